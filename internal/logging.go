package internal

import (
	"io"
	"log"
	"os"
)

// InitLogging sends the standard logger to stdout with microsecond
// timestamps. Quiet runs discard it; fatal errors still reach stderr through
// the command's error return.
func InitLogging(quiet bool) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if quiet {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(os.Stdout)
}

package formatter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockFileName  = ".stc-gtfs.lock"
	lockRetryWait = 100 * time.Millisecond
)

// ErrOutputLocked is returned when another run holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another run")

// withDirLock creates dir if needed and runs fn while holding its lock file.
func withDirLock(ctx context.Context, dir string, fn func() error) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockFileName))

	ok, err := lock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s", ErrOutputLocked, dir)
		}
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutputLocked, dir)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

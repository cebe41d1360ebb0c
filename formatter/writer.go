package formatter

import (
	"context"
	"fmt"
)

const (
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Write dispatches to the writer for format.
func Write(ctx context.Context, format, dir, prefix string, env Envelope) (string, error) {
	switch format {
	case FormatJSON, "":
		return WriteJSON(ctx, dir, prefix, env)
	case FormatSQLite:
		return WriteSQLite(ctx, dir, prefix, env)
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

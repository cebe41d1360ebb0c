package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFileName is the name WriteJSON uses, after the prefix.
const JSONFileName = "feed.json"

// WriteJSON writes env to <dir>/<prefix>feed.json and returns the path.
// The file is written to a temporary name first and renamed into place.
func WriteJSON(ctx context.Context, dir, prefix string, env Envelope) (string, error) {
	if env.Feed == nil {
		return "", errors.New("write json: empty feed")
	}
	path := filepath.Join(dir, prefix+JSONFileName)

	err := withDirLock(ctx, dir, func() error {
		b, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal feed: %w", err)
		}
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, b, 0644); err != nil {
			return fmt.Errorf("write %s: %w", tmp, err)
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", tmp, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// ReadJSON loads an envelope written by WriteJSON.
func ReadJSON(path string) (Envelope, error) {
	var env Envelope
	b, err := os.ReadFile(path)
	if err != nil {
		return env, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return env, fmt.Errorf("decode %s: %w", path, err)
	}
	return env, nil
}

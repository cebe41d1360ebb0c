package gtfs

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// SerializeFeed encodes a decoded feed with gob so later runs can skip the
// zip parse.
//
// Example:
//
//	feed, _ := gtfs.NewFeedFromFile("input/gtfs.zip")
//	data, err := gtfs.SerializeFeed(feed)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("/cache/stc.gob", data, 0644)
func SerializeFeed(feed *Feed) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeFeedToWriter(feed, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeFeed decodes a feed produced by SerializeFeed.
func DeserializeFeed(data []byte) (*Feed, error) {
	return DeserializeFeedFromReader(bytes.NewReader(data))
}

// SerializeFeedToFile writes the gob snapshot to path.
func SerializeFeedToFile(feed *Feed, path string) error {
	data, err := SerializeFeed(feed)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DeserializeFeedFromFile reads a gob snapshot. Callers treat any error as a
// cache miss and decode the zip again.
func DeserializeFeedFromFile(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeFeed(data)
}

func SerializeFeedToWriter(feed *Feed, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(feed); err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	return nil
}

func DeserializeFeedFromReader(r io.Reader) (*Feed, error) {
	var feed Feed
	if err := gob.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return &feed, nil
}

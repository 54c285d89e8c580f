// Package cache stores chat completion responses in a single JSON file.
//
// The file holds one JSON object mapping the serialized prompt messages to the
// serialized API response. Entries never expire. The whole file is read when
// the cache is opened and rewritten on every Set; concurrent writers from
// separate processes race and the last rewrite wins.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrMalformed is returned when the cache file exists but is not a JSON
// object of strings.
var ErrMalformed = errors.New("malformed cache file")

// State tracks the lifecycle of the in-memory map relative to the file.
type State int

const (
	// Unloaded means the file has not been read yet
	Unloaded State = iota
	// Loaded means the map mirrors the file (or the file does not exist)
	Loaded
	// Dirty means the map has changes not yet written to the file
	Dirty
	// Persisted means the last change was written to the file
	Persisted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Dirty:
		return "dirty"
	case Persisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// ResponseCache is a persistent string-to-string map backed by one file.
// It is not safe for concurrent use.
type ResponseCache struct {
	path    string
	entries map[string]string
	state   State
}

// New creates a cache for path without touching the file system.
// Call Load before using it, or use Open.
func New(path string) *ResponseCache {
	return &ResponseCache{
		path:    path,
		entries: make(map[string]string),
		state:   Unloaded,
	}
}

// Open creates a cache for path and loads the file if it exists.
func Open(path string) (*ResponseCache, error) {
	c := New(path)
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the whole backing file into memory. A missing file leaves the
// cache empty and is not an error.
func (c *ResponseCache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.entries = make(map[string]string)
			c.state = Loaded
			return nil
		}
		return fmt.Errorf("failed to read cache file %s: %w", c.path, err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w %s: %v", ErrMalformed, c.path, err)
	}
	// A file containing "null" decodes to a nil map
	if entries == nil {
		entries = make(map[string]string)
	}

	c.entries = entries
	c.state = Loaded
	logrus.Debugf("Loaded %d cached responses from %s", len(entries), c.path)
	return nil
}

// Get returns the cached value for key.
func (c *ResponseCache) Get(key string) (string, bool) {
	value, ok := c.entries[key]
	return value, ok
}

// Set stores value under key and rewrites the backing file.
func (c *ResponseCache) Set(key, value string) error {
	c.entries[key] = value
	c.state = Dirty
	return c.flush()
}

// flush writes the entire map to a temp file next to the cache file and
// renames it over the original.
func (c *ResponseCache) flush() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("failed to replace cache file %s: %w", c.path, err)
	}

	c.state = Persisted
	logrus.Debugf("Cached response: %s (%d entries)", c.path, len(c.entries))
	return nil
}

// Clear empties the cache and removes the backing file.
func (c *ResponseCache) Clear() error {
	c.entries = make(map[string]string)
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file %s: %w", c.path, err)
	}
	c.state = Loaded
	return nil
}

// Len returns the number of cached responses
func (c *ResponseCache) Len() int {
	return len(c.entries)
}

// Path returns the backing file path
func (c *ResponseCache) Path() string {
	return c.path
}

// State returns the current lifecycle state
func (c *ResponseCache) State() State {
	return c.state
}

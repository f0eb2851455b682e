// Package cache persists named slots of JSON data under the user cache
// directory. Slots never expire; they live until the directory is cleared.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const appDirName = "globe"

// Dir stores each slot as one file inside a directory.
type Dir struct {
	mu   sync.Mutex
	path string
}

// New returns a Dir rooted at path. A blank path uses the platform cache
// directory (for example ~/.cache/globe on Linux).
func New(path string) (*Dir, error) {
	resolved, err := resolveDir(path)
	if err != nil {
		return nil, err
	}
	return &Dir{path: resolved}, nil
}

// Path returns the directory backing the cache.
func (d *Dir) Path() string {
	return d.path
}

// Exists reports whether a slot named key has been stored.
func (d *Dir) Exists(key string) bool {
	p, err := d.slotPath(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Store encodes v as JSON into the slot named key, replacing any previous
// value. The write is atomic: readers see the old or the new file, never a
// partial one.
func (d *Dir) Store(key string, v any) error {
	p, err := d.slotPath(key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(d.path, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

// Retrieve decodes the slot named key into dest, which must be a pointer.
// A missing slot returns an error wrapping os.ErrNotExist.
func (d *Dir) Retrieve(key string, dest any) error {
	p, err := d.slotPath(key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Clear removes the slot named key. Clearing a missing slot is not an error.
func (d *Dir) Clear(key string) error {
	p, err := d.slotPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (d *Dir) slotPath(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(d.path, key), nil
}

func resolveDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolve cache dir: %w", err)
		}
		return filepath.Join(base, appDirName), nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// File persists all keys as one JSON object on disk. Writes go through a
// temporary file and a rename so a crash never leaves a torn document.
// Updates hold an exclusive lock on a sibling ".lock" file, so processes
// sharing the document do not lose each other's writes.
type File struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewFile returns a store backed by the JSON document at path. The file is
// created on first save; intermediate directories are created automatically.
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{path: path, logger: logger}
}

func (f *File) Load(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Save(ctx context.Context, key, value string) error {
	return f.Update(ctx, key, func(string, bool) (string, error) {
		return value, nil
	})
}

// Update applies fn under both the in-process mutex and the file lock.
func (f *File) Update(_ context.Context, key string, fn UpdateFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("kv file: create dir: %w", err)
	}
	unlock, err := lockFile(f.path + ".lock")
	if err != nil {
		return fmt.Errorf("kv file: lock %q: %w", f.path, err)
	}
	defer unlock()

	values, err := f.read()
	if err != nil {
		f.logger.Warn("kv file unreadable, starting a new document", "path", f.path, "backup", f.path+".bak", "err", err)
		f.backup()
		values = make(map[string]string)
	}

	current, found := values[key]
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	values[key] = next
	return f.write(values)
}

// backup copies the current document aside before it is replaced.
func (f *File) backup() {
	data, err := os.ReadFile(f.path)
	if err == nil {
		err = os.WriteFile(f.path+".bak", data, 0644)
	}
	if err != nil {
		f.logger.Error("Unable to back up kv file", "path", f.path, "err", err)
	}
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv file: read %q: %w", f.path, err)
	}
	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("kv file: decode %q: %w", f.path, err)
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("kv file: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kv-*")
	if err != nil {
		return fmt.Errorf("kv file: create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("kv file: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("kv file: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("kv file: rename: %w", err)
	}
	return nil
}

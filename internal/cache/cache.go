// Package cache is the persistent local read path: a file per collection
// under one directory, readable instantly at startup and watchable by
// other processes on the same device.
package cache

import (
	"log/slog"
	"os"
	"path/filepath"
)

type FileCache struct {
	dir string
	log *slog.Logger
}

func New(dir string, log *slog.Logger) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, log: log}, nil
}

func (c *FileCache) Dir() string { return c.dir }

// Get returns the raw bytes stored under name. Any read failure degrades
// to absent; callers own the serialization shape.
func (c *FileCache) Get(name string) ([]byte, bool) {
	raw, err := os.ReadFile(c.path(name))
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Set replaces the value stored under name. The write is atomic at the
// collection granularity (temp file + rename) so concurrent readers never
// observe a torn value. Failures are logged, never returned.
func (c *FileCache) Set(name string, raw []byte) {
	dst := c.path(name)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		c.log.Warn("cache write failed", slog.String("name", name), slog.Any("err", err))
		return
	}
	if err := os.Rename(tmp, dst); err != nil {
		c.log.Warn("cache rename failed", slog.String("name", name), slog.Any("err", err))
	}
}

func (c *FileCache) Delete(name string) {
	if err := os.Remove(c.path(name)); err != nil && !os.IsNotExist(err) {
		c.log.Warn("cache delete failed", slog.String("name", name), slog.Any("err", err))
	}
}

func (c *FileCache) path(name string) string {
	return filepath.Join(c.dir, name+".json")
}

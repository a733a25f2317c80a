package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// KV is the key-value string store tasks are persisted in.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

const tempDirName = ".tmp"

// DiskKV stores each key as a file under a base directory. Reads go to disk
// every time because other todo processes may write the same directory.
type DiskKV struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskKV opens (creating if needed) a diskv store rooted at basePath.
func NewDiskKV(basePath string) (*DiskKV, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	tmp := filepath.Join(basePath, tempDirName)
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskKV{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  tmp,
		}),
		basePath: basePath,
	}, nil
}

// BasePath is the directory holding the store.
func (k *DiskKV) BasePath() string {
	return k.basePath
}

func (k *DiskKV) Get(key string) (string, bool, error) {
	if !k.d.Has(key) {
		return "", false, nil
	}
	rc, err := k.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %q: %w", key, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("store: read %q: %w", key, err)
	}
	return string(val), true, nil
}

func (k *DiskKV) Set(key, value string) error {
	if err := k.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

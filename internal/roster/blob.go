package roster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// ErrSlotEmpty is returned by a BlobStore when the named slot holds nothing
var ErrSlotEmpty = errors.New("storage slot is empty")

// BlobStore is a synchronous key-value store of opaque blobs
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
}

const slotFileExt = ".json"

// FileBlobStore keeps each slot in its own file under a directory.
// Writes go through a temp file and rename, guarded by a file lock so two
// processes sharing the directory never interleave a write.
type FileBlobStore struct {
	dir string
}

// NewFileBlobStore creates the directory if needed
func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileBlobStore{dir: dir}, nil
}

// Dir returns the directory holding the slot files
func (s *FileBlobStore) Dir() string {
	return s.dir
}

// SlotPath returns the file backing the given slot
func (s *FileBlobStore) SlotPath(key string) string {
	return filepath.Join(s.dir, key+slotFileExt)
}

// Get reads a slot
func (s *FileBlobStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.SlotPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Put overwrites a slot
func (s *FileBlobStore) Put(key string, data []byte) error {
	path := s.SlotPath(key)

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock slot %s: %w", key, err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace slot %s: %w", key, err)
	}
	return nil
}

// MemoryBlobStore is an in-process BlobStore, used by tests and dry runs
type MemoryBlobStore struct {
	mu    sync.Mutex
	slots map[string][]byte
	// FailWrites makes every Put fail, to simulate a full quota
	FailWrites bool
	// ReadErr, when set, is returned by every Get
	ReadErr error
	Writes  int
}

// NewMemoryBlobStore creates an empty in-memory store
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{slots: make(map[string][]byte)}
}

// Get reads a slot
func (s *MemoryBlobStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	data, ok := s.slots[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), data...), nil
}

// Put overwrites a slot
func (s *MemoryBlobStore) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("quota exceeded writing slot %s", key)
	}
	s.slots[key] = append([]byte(nil), data...)
	s.Writes++
	return nil
}

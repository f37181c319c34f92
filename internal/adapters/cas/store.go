// Package cas implements the content addressed cache file: a flat JSON key-value store
// whose keys are input digests.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"syscall"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-billy/v5"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.KeyValueStore = (*Store)(nil)

// Store implements ports.KeyValueStore using a flat JSON file.
type Store struct {
	fs      billy.Filesystem
	path    string
	logger  ports.Logger
	mu      sync.RWMutex
	entries map[string]json.RawMessage

	// fingerprint is the xxhash of the bytes last read from or written to path.
	fingerprint uint64
	synced      bool
}

// NewStore creates a Store backed by the file at path and loads its content.
// A missing, empty, or corrupt file yields an empty store. Corrupt files are removed.
func NewStore(fsys billy.Filesystem, path string, logger ports.Logger) *Store {
	s := &Store{
		fs:      fsys,
		path:    filepath.Clean(path),
		logger:  logger,
		entries: make(map[string]json.RawMessage),
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readFile()
	if err != nil {
		if isMissing(err) {
			return
		}
		s.discard(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()))
		return
	}

	if len(data) == 0 {
		s.discard(zerr.New("cache file is empty"))
		return
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		s.discard(zerr.Wrap(err, "cache file is not valid JSON"))
		return
	}
	if entries == nil {
		entries = make(map[string]json.RawMessage)
	}

	s.entries = entries
	s.fingerprint = xxhash.Sum64(data)
	s.synced = true
}

// isMissing reports whether err means there is no cache file to read, including
// a parent path component that is a regular file.
func isMissing(err error) bool {
	return errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func (s *Store) readFile() ([]byte, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	return io.ReadAll(f)
}

// discard drops an unreadable cache file so the next persist starts clean.
func (s *Store) discard(reason error) {
	if s.logger != nil {
		s.logger.Warn(fmt.Sprintf("discarding unreadable cache file %s: %v", s.path, reason))
	}
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, iofs.ErrNotExist) && s.logger != nil {
		s.logger.Warn(fmt.Sprintf("failed to remove cache file %s: %v", s.path, err))
	}
}

// Get decodes the value stored under key into out.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error()), "key", key)
	}
	return true, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "key", key)
	}

	s.mu.Lock()
	s.entries[key] = raw
	s.mu.Unlock()
	return nil
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.entries))
}

// Remove deletes key.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// ClearAll deletes every key.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

// Persist writes the store to a temporary file next to path and renames it into place.
// The write is skipped when the serialized content matches the file on disk.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	sum := xxhash.Sum64(data)
	if s.synced && sum == s.fingerprint {
		if _, err := s.fs.Stat(s.path); err == nil {
			return nil
		}
	}

	if err := s.writeAtomic(data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}

	s.fingerprint = sum
	s.synced = true
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	tmp, err := s.fs.TempFile(dir, ".cache-")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return zerr.Wrap(err, "failed to write temporary file")
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.Wrap(err, "failed to close temporary file")
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.Wrap(err, "failed to move temporary file into place")
	}
	return nil
}

// Package resultcache stores transform results keyed by input digest, on top of a
// versioned key-value store.
package resultcache

import (
	"slices"

	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache maps input digests to LibraryRecords.
// The reserved domain.DataVersionKey entry always holds the current version.
type Cache struct {
	store ports.KeyValueStore
}

// New wraps store. When the stored version differs from version, every entry is
// dropped and the emptied store is persisted before the new version is recorded.
func New(store ports.KeyValueStore, version string) (*Cache, error) {
	var stored string
	found, err := store.Get(domain.DataVersionKey, &stored)
	if err != nil {
		// An undecodable version tag is treated like a foreign version.
		found, stored = true, ""
	}

	if found && stored != version {
		store.ClearAll()
		if err := store.Persist(); err != nil {
			return nil, zerr.Wrap(err, "failed to flush outdated cache")
		}
	}

	if err := store.Set(domain.DataVersionKey, version); err != nil {
		return nil, err
	}

	return &Cache{store: store}, nil
}

// Lookup returns the record committed under digest, or nil if there is none.
// Entries that cannot be decoded are treated as absent.
func (c *Cache) Lookup(digest string) *domain.LibraryRecord {
	if digest == domain.DataVersionKey {
		return nil
	}

	var rec domain.LibraryRecord
	found, err := c.store.Get(digest, &rec)
	if err != nil || !found {
		return nil
	}
	return &rec
}

// Commit stores rec under its digest.
func (c *Cache) Commit(rec domain.LibraryRecord) error {
	if rec.Digest == "" || rec.Digest == domain.DataVersionKey {
		return zerr.With(zerr.New("invalid record digest"), "digest", rec.Digest)
	}
	return c.store.Set(rec.Digest, rec)
}

// Digests returns every committed digest in sorted order.
func (c *Cache) Digests() []string {
	return slices.DeleteFunc(c.store.Keys(), func(k string) bool {
		return k == domain.DataVersionKey
	})
}

// Evict removes the entry for digest. The version entry cannot be evicted.
func (c *Cache) Evict(digest string) {
	if digest == domain.DataVersionKey {
		return
	}
	c.store.Remove(digest)
}

// Persist writes the cache to disk.
func (c *Cache) Persist() error {
	return c.store.Persist()
}

package domain

import "path/filepath"

const (
	// CacheDataVersion tags the layout of persisted cache entries.
	// Changing it discards every entry written by an older layout.
	CacheDataVersion = "2"

	// DataVersionKey is the reserved cache key holding the data version.
	DataVersionKey = "data-version"

	// WorkDirName is the name of the internal working directory.
	WorkDirName = ".aarcache"

	// CacheFileName is the name of the persisted cache file.
	CacheFileName = "cache.json"

	// ExplodedDirName is the name of the directory receiving exploded archives.
	ExplodedDirName = "exploded"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "aarcache.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the default path of the cache file.
// It joins .aarcache and cache.json.
func DefaultCachePath() string {
	return filepath.Join(WorkDirName, CacheFileName)
}

// DefaultOutputBase returns the default directory for exploded archives.
func DefaultOutputBase() string {
	return filepath.Join(WorkDirName, ExplodedDirName)
}

package domain

import "go.trai.ch/zerr"

var (
	// ErrStoreReadFailed is returned when the cache file exists but cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache file")

	// ErrStoreWriteFailed is returned when the cache file cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache file")

	// ErrStoreMarshalFailed is returned when a value cannot be encoded for the cache.
	ErrStoreMarshalFailed = zerr.New("failed to encode cache value")

	// ErrStoreDecodeFailed is returned when a cached value cannot be decoded into the requested type.
	ErrStoreDecodeFailed = zerr.New("failed to decode cache value")

	// ErrInputHashFailed is returned when an archive input cannot be read for hashing.
	ErrInputHashFailed = zerr.New("failed to hash input")

	// ErrUnsupportedDigestAlgorithm is returned for an unknown hash algorithm name.
	ErrUnsupportedDigestAlgorithm = zerr.New("unsupported digest algorithm")

	// ErrTransformFailed is returned when the transformer fails for an input.
	ErrTransformFailed = zerr.New("transform failed")

	// ErrManifestMissing is returned when an archive has no AndroidManifest.xml.
	ErrManifestMissing = zerr.New("archive has no AndroidManifest.xml")

	// ErrPackageNameMissing is returned when the manifest declares no package.
	ErrPackageNameMissing = zerr.New("manifest declares no package name")

	// ErrIllegalArchiveEntry is returned when an archive entry would be written outside its target directory.
	ErrIllegalArchiveEntry = zerr.New("illegal archive entry path")

	// ErrConfigNotFound is returned when no configuration file can be located.
	ErrConfigNotFound = zerr.New("no aarcache configuration found")

	// ErrUnsupportedConfigVersion is returned for a configuration version this build does not understand.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the configuration file is malformed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidVariant is returned for an unknown variant name.
	ErrInvalidVariant = zerr.New("invalid variant")

	// ErrInvalidOrigin is returned for an unknown source origin.
	ErrInvalidOrigin = zerr.New("invalid source origin")

	// ErrMissingModuleID is returned when a module source has no module id.
	ErrMissingModuleID = zerr.New("module source requires a module id")

	// ErrInputNotFound is returned when a source pattern matches no files.
	ErrInputNotFound = zerr.New("input not found")

	// ErrRunFailed is returned by the application when the cache run aborts.
	ErrRunFailed = zerr.New("cache run failed")
)

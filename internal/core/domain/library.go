// Package domain holds the core types shared by the cache engine and its adapters.
package domain

import "slices"

// OriginKind describes where an archive input was declared.
type OriginKind string

const (
	// OriginCore marks inputs that belong to the host build itself.
	OriginCore OriginKind = "core"
	// OriginModule marks inputs contributed by a module.
	OriginModule OriginKind = "module"
	// OriginProject marks inputs declared by the project.
	OriginProject OriginKind = "project"
)

// ParseOriginKind converts a configuration string into an OriginKind.
func ParseOriginKind(s string) (OriginKind, error) {
	switch OriginKind(s) {
	case OriginCore, OriginModule, OriginProject:
		return OriginKind(s), nil
	case "":
		return OriginProject, nil
	default:
		return "", ErrInvalidOrigin
	}
}

// Variant selects the build flavour a run produces.
type Variant string

const (
	// VariantApp produces an application build. Assets and shared libraries may be copied out.
	VariantApp Variant = "app"
	// VariantModule produces a module build. Jars are collected as classpath entries.
	VariantModule Variant = "module"
)

// ParseVariant converts a configuration string into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantApp, VariantModule:
		return Variant(s), nil
	case "":
		return VariantApp, nil
	default:
		return "", ErrInvalidVariant
	}
}

// TaskRef identifies one archive input handed to the cache.
type TaskRef struct {
	InputPath string     `json:"inputPath"`
	Origin    OriginKind `json:"origin"`
	ModuleID  string     `json:"moduleId,omitempty"`
}

// Label returns a short human readable description of where the input came from.
func (t TaskRef) Label() string {
	if t.Origin == OriginModule && t.ModuleID != "" {
		return string(t.Origin) + " " + t.ModuleID
	}
	return string(t.Origin)
}

// LibraryRecord is the outcome of transforming one archive.
type LibraryRecord struct {
	DeclaredName        string   `json:"packageName"`
	OutputPath          string   `json:"explodedPath"`
	ArtifactPaths       []string `json:"jars"`
	NativeArtifactPaths []string `json:"nativeLibraries"`
	Digest              string   `json:"hash"`
	SourceTask          TaskRef  `json:"task"`
}

// Clone returns a deep copy of the record.
func (r LibraryRecord) Clone() LibraryRecord {
	r.ArtifactPaths = slices.Clone(r.ArtifactPaths)
	r.NativeArtifactPaths = slices.Clone(r.NativeArtifactPaths)
	return r
}

// TransformResult is what a transformer reports after exploding an archive.
type TransformResult struct {
	PackageName     string   `json:"packageName"`
	ExplodedPath    string   `json:"explodedPath"`
	Jars            []string `json:"jars"`
	NativeLibraries []string `json:"nativeLibraries"`
}

// Record builds a LibraryRecord for the given task and digest.
func (r *TransformResult) Record(digest string, task TaskRef) LibraryRecord {
	return LibraryRecord{
		DeclaredName:        r.PackageName,
		OutputPath:          r.ExplodedPath,
		ArtifactPaths:       slices.Clone(r.Jars),
		NativeArtifactPaths: slices.Clone(r.NativeLibraries),
		Digest:              digest,
		SourceTask:          task,
	}
}

// VariantOptions carries the optional copy destinations passed to a transformer.
type VariantOptions struct {
	AssetsDestinationPath        string
	SharedLibraryDestinationPath string
}

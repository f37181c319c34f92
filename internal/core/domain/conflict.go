package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// ErrPackageConflict is the sentinel matched by every ConflictError.
var ErrPackageConflict = zerr.New("package name declared by more than one archive")

// ConflictError reports two different archives declaring the same package name.
// First is the record that claimed the name earlier in input order.
type ConflictError struct {
	Name   string
	First  LibraryRecord
	Second LibraryRecord
}

// NewConflictError builds a ConflictError for the given records.
func NewConflictError(first, second LibraryRecord) *ConflictError {
	return &ConflictError{
		Name:   second.DeclaredName,
		First:  first.Clone(),
		Second: second.Clone(),
	}
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %q is declared by two different archives\n", e.Name)
	fmt.Fprintf(&b, "  first:  %s (%s, digest %s)\n", e.First.SourceTask.InputPath, e.First.SourceTask.Label(), e.First.Digest)
	fmt.Fprintf(&b, "  second: %s (%s, digest %s)\n", e.Second.SourceTask.InputPath, e.Second.SourceTask.Label(), e.Second.Digest)
	b.WriteString(e.Guidance())
	return b.String()
}

// Unwrap allows errors.Is(err, ErrPackageConflict).
func (e *ConflictError) Unwrap() error {
	return ErrPackageConflict
}

// Guidance returns the remediation hint matching the origins of both archives.
func (e *ConflictError) Guidance() string {
	a, b := e.First.SourceTask, e.Second.SourceTask
	switch {
	case a.Origin == OriginModule && b.Origin == OriginModule:
		return fmt.Sprintf(
			"Modules %q and %q both ship this library. Remove it from one module, or ask the module authors to rename the package.",
			a.ModuleID, b.ModuleID,
		)
	case a.Origin == OriginCore && b.Origin == OriginCore:
		return "The core build ships this library twice. This is a packaging error in the host build; report it to its maintainers."
	case a.Origin == b.Origin:
		return "The project declares this library twice. Keep a single copy of the archive in the project sources."
	default:
		mod := a
		if b.Origin == OriginModule {
			mod = b
		}
		if mod.Origin == OriginModule {
			return fmt.Sprintf(
				"The project and module %q both ship this library. Remove the project copy and rely on the module, or remove the module.",
				mod.ModuleID,
			)
		}
		return "The project and the core build both ship this library. Remove the project copy."
	}
}

package orchestrator

import "go.trai.ch/aarcache/internal/core/domain"

// digestRegistry remembers which content digests were already handled in a run.
type digestRegistry map[string]domain.LibraryRecord

func (r digestRegistry) lookup(digest string) (domain.LibraryRecord, bool) {
	rec, ok := r[digest]
	return rec, ok
}

func (r digestRegistry) add(rec domain.LibraryRecord) {
	r[rec.Digest] = rec
}

// nameRegistry maps declared package names to the record that claimed them first.
type nameRegistry map[string]domain.LibraryRecord

// check returns a ConflictError when a different archive already claimed rec's name.
func (r nameRegistry) check(rec domain.LibraryRecord) error {
	prev, ok := r[rec.DeclaredName]
	if !ok || prev.Digest == rec.Digest {
		return nil
	}
	return domain.NewConflictError(prev, rec)
}

func (r nameRegistry) add(rec domain.LibraryRecord) {
	r[rec.DeclaredName] = rec
}

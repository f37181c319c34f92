// Package orchestrator runs archive inputs through the result cache, transforming
// only what changed and rejecting duplicate package names.
package orchestrator

import (
	"context"
	"fmt"

	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/aarcache/internal/engine/resultcache"
	"go.trai.ch/zerr"
)

// Options configures a single Run.
type Options struct {
	Variant        domain.Variant
	CachePath      string
	OutputBase     string
	VariantOptions domain.VariantOptions
	Algorithm      domain.DigestAlgorithm

	// StrictReuse additionally requires every recorded artifact to exist before a
	// cached record is reused.
	StrictReuse bool

	// DataVersion overrides domain.CacheDataVersion.
	DataVersion string
}

// Stats counts what happened to the inputs of a run.
type Stats struct {
	Transformed int
	Reused      int
	Skipped     int
	Evicted     int
}

// Result is the outcome of a successful Run.
type Result struct {
	// Libraries holds one record per unique input, in input order.
	Libraries []domain.LibraryRecord
	// ClasspathEntries holds the jars contributed by a module variant run.
	ClasspathEntries []string
	Stats            Stats
}

// Orchestrator processes archive inputs sequentially against a persisted result cache.
type Orchestrator struct {
	hasher      ports.Hasher
	transformer ports.Transformer
	verifier    ports.Verifier
	opener      ports.StoreOpener
	logger      ports.Logger
	telemetry   ports.Telemetry
}

// New creates a new Orchestrator.
func New(
	hasher ports.Hasher,
	transformer ports.Transformer,
	verifier ports.Verifier,
	opener ports.StoreOpener,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Orchestrator {
	return &Orchestrator{
		hasher:      hasher,
		transformer: transformer,
		verifier:    verifier,
		opener:      opener,
		logger:      logger,
		telemetry:   telemetry,
	}
}

// Run processes tasks in order. On success, cache entries not produced by this run
// are evicted and the cache is persisted once. On failure nothing is persisted.
func (o *Orchestrator) Run(ctx context.Context, tasks []domain.TaskRef, opts Options) (*Result, error) {
	if len(tasks) == 0 {
		return &Result{}, nil
	}

	version := opts.DataVersion
	if version == "" {
		version = domain.CacheDataVersion
	}
	if opts.Algorithm == "" {
		opts.Algorithm = domain.DigestSHA256
	}

	store, err := o.opener.Open(opts.CachePath)
	if err != nil {
		return nil, err
	}
	cache, err := resultcache.New(store, version)
	if err != nil {
		return nil, err
	}

	r := &run{
		Orchestrator: o,
		opts:         opts,
		cache:        cache,
		digests:      make(digestRegistry),
		names:        make(nameRegistry),
		jarSeen:      make(map[string]struct{}),
	}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.process(ctx, task); err != nil {
			return nil, err
		}
	}

	r.prune()

	if err := cache.Persist(); err != nil {
		return nil, err
	}

	return &r.result, nil
}

// run holds the state scoped to one Run call.
type run struct {
	*Orchestrator

	opts    Options
	cache   *resultcache.Cache
	digests digestRegistry
	names   nameRegistry
	jarSeen map[string]struct{}
	result  Result
}

type outcomeKind int

const (
	// outcomeSkip means the input duplicates the content of an earlier input.
	outcomeSkip outcomeKind = iota
	// outcomeProceed carries a record to register.
	outcomeProceed
)

type outcome struct {
	kind   outcomeKind
	record domain.LibraryRecord
	reused bool
}

func (r *run) process(ctx context.Context, task domain.TaskRef) error {
	ctx, vertex := r.telemetry.Record(ctx, task.InputPath)

	out, err := r.resolve(ctx, task, vertex)
	if err == nil && out.kind == outcomeProceed {
		err = r.register(out.record)
	}
	if err != nil {
		vertex.Complete(err)
		return err
	}

	switch {
	case out.kind == outcomeSkip:
		r.result.Stats.Skipped++
	case out.reused:
		r.result.Stats.Reused++
		vertex.Cached()
	default:
		r.result.Stats.Transformed++
	}
	vertex.Complete(nil)
	return nil
}

func (r *run) resolve(ctx context.Context, task domain.TaskRef, vertex ports.Vertex) (outcome, error) {
	digest, err := r.hasher.Digest(task.InputPath, r.opts.Algorithm)
	if err != nil {
		return outcome{}, zerr.With(err, "input", task.InputPath)
	}

	if first, ok := r.digests.lookup(digest); ok {
		msg := fmt.Sprintf("skipping %s: same content as %s", task.InputPath, first.SourceTask.InputPath)
		r.logger.Info(msg)
		vertex.Log(msg)
		return outcome{kind: outcomeSkip}, nil
	}

	if rec := r.reusable(digest, task); rec != nil {
		vertex.Log("reusing " + rec.OutputPath)
		return outcome{kind: outcomeProceed, record: *rec, reused: true}, nil
	}

	res, err := r.transformer.Transform(ctx, task.InputPath, r.opts.OutputBase, r.opts.VariantOptions)
	if err != nil {
		return outcome{}, zerr.With(zerr.Wrap(err, domain.ErrTransformFailed.Error()), "input", task.InputPath)
	}
	vertex.Log("exploded into " + res.ExplodedPath)

	return outcome{kind: outcomeProceed, record: res.Record(digest, task)}, nil
}

// reusable returns the cached record for digest if it was produced from the same
// input path and its output directory is still present.
func (r *run) reusable(digest string, task domain.TaskRef) *domain.LibraryRecord {
	rec := r.cache.Lookup(digest)
	if rec == nil || rec.SourceTask.InputPath != task.InputPath {
		return nil
	}

	ok, err := r.verifier.DirExists(rec.OutputPath)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("cannot verify cached output %s: %v", rec.OutputPath, err))
		return nil
	}
	if !ok {
		return nil
	}

	if r.opts.StrictReuse {
		paths := append(append([]string{}, rec.ArtifactPaths...), rec.NativeArtifactPaths...)
		ok, err := r.verifier.FilesExist(paths)
		if err != nil || !ok {
			return nil
		}
	}

	rec.SourceTask = task
	return rec
}

func (r *run) register(rec domain.LibraryRecord) error {
	if err := r.names.check(rec); err != nil {
		return err
	}

	r.digests.add(rec)
	r.names.add(rec)
	r.result.Libraries = append(r.result.Libraries, rec)

	if r.opts.Variant == domain.VariantModule {
		for _, jar := range rec.ArtifactPaths {
			if _, ok := r.jarSeen[jar]; ok {
				continue
			}
			r.jarSeen[jar] = struct{}{}
			r.result.ClasspathEntries = append(r.result.ClasspathEntries, jar)
		}
	}

	return r.cache.Commit(rec)
}

// prune evicts cache entries whose digest was not seen in this run.
func (r *run) prune() {
	for _, digest := range r.cache.Digests() {
		if _, ok := r.digests.lookup(digest); ok {
			continue
		}
		r.cache.Evict(digest)
		r.result.Stats.Evicted++
	}
}

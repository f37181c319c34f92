package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	ConfigPath string
	JSON       bool
}

// Inspect prints the entries of the persisted cache without modifying it.
func (a *App) Inspect(_ context.Context, opts InspectOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	info, err := a.fs.Stat(cfg.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			a.logger.Info(fmt.Sprintf("no cache at %s", cfg.CachePath))
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", cfg.CachePath)
	}

	store, err := a.opener.Open(cfg.CachePath)
	if err != nil {
		return err
	}

	var version string
	if _, err := store.Get(domain.DataVersionKey, &version); err != nil {
		version = ""
	}

	var records []domain.LibraryRecord
	for _, key := range store.Keys() {
		if key == domain.DataVersionKey {
			continue
		}
		var rec domain.LibraryRecord
		if ok, err := store.Get(key, &rec); err != nil || !ok {
			a.logger.Warn(fmt.Sprintf("skipping undecodable cache entry %s", key))
			continue
		}
		records = append(records, rec)
	}

	if opts.JSON {
		if records == nil {
			records = []domain.LibraryRecord{}
		}
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	state := ""
	if version != domain.CacheDataVersion {
		state = ", outdated: discarded on next run"
	}
	_, _ = fmt.Fprintf(a.out, "%s (data version %q, %d entries, updated %s%s)\n",
		cfg.CachePath, version, len(records), humanize.Time(info.ModTime()), state)

	if len(records) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DIGEST\tPACKAGE\tORIGIN\tSIZE\tINPUT")
	for _, rec := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortDigest(rec.Digest),
			rec.DeclaredName,
			rec.SourceTask.Label(),
			a.artifactSize(rec),
			rec.SourceTask.InputPath,
		)
	}
	return w.Flush()
}

// artifactSize sums the sizes of the record's artifacts that still exist.
func (a *App) artifactSize(rec domain.LibraryRecord) string {
	var total uint64
	missing := false
	for _, paths := range [][]string{rec.ArtifactPaths, rec.NativeArtifactPaths} {
		for _, p := range paths {
			info, err := a.fs.Stat(p)
			if err != nil {
				missing = true
				continue
			}
			total += uint64(info.Size()) //nolint:gosec // file sizes are non-negative
		}
	}
	size := humanize.Bytes(total)
	if missing {
		size += " (missing files)"
	}
	return size
}

func shortDigest(d string) string {
	const n = 12
	if len(d) <= n {
		return d
	}
	return d[:n]
}

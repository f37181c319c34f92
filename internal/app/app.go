// Package app implements the application layer for aarcache.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"go.trai.ch/aarcache/internal/adapters/fs"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/aarcache/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.InputResolver
	hasher       ports.Hasher
	verifier     ports.Verifier
	opener       ports.StoreOpener
	transformers ports.TransformerProvider
	logger       ports.Logger
	telemetry    ports.Telemetry
	fs           billy.Filesystem
	out          io.Writer
	workDir      string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.InputResolver,
	hasher ports.Hasher,
	verifier ports.Verifier,
	opener ports.StoreOpener,
	transformers ports.TransformerProvider,
	log ports.Logger,
	telemetry ports.Telemetry,
	fsys billy.Filesystem,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		hasher:       hasher,
		verifier:     verifier,
		opener:       opener,
		transformers: transformers,
		logger:       log,
		telemetry:    telemetry,
		fs:           fsys,
		out:          os.Stdout,
		workDir:      ".",
	}
}

// WithOutput sets the writer receiving command output such as JSON reports.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkDir sets the directory searched for a configuration file when none is given.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath selects the configuration file. Empty searches the working directory.
	ConfigPath string
	// Variant overrides the configured variant when set.
	Variant string
	// Strict enables strict reuse regardless of the configuration.
	Strict bool
	// JSON prints the resulting library records as JSON.
	JSON bool
}

// Run loads the configuration, resolves the archive inputs and runs them through the cache.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.Variant != "" {
		variant, err := domain.ParseVariant(opts.Variant)
		if err != nil {
			return zerr.With(err, "variant", opts.Variant)
		}
		cfg.Variant = variant
	}
	if opts.Strict {
		cfg.StrictReuse = true
	}

	tasks, err := a.resolveTasks(cfg)
	if err != nil {
		return err
	}

	variantOpts := cfg.VariantOptions
	if cfg.Variant != domain.VariantApp {
		variantOpts = domain.VariantOptions{}
	}

	orch := orchestrator.New(
		a.hasher,
		a.transformers.Transformer(cfg.TransformCommand),
		a.verifier,
		a.opener,
		a.logger,
		a.telemetry,
	)
	defer func() {
		_ = a.telemetry.Close()
	}()

	res, err := orch.Run(ctx, tasks, orchestrator.Options{
		Variant:        cfg.Variant,
		CachePath:      cfg.CachePath,
		OutputBase:     cfg.OutputBase,
		VariantOptions: variantOpts,
		Algorithm:      cfg.Algorithm,
		StrictReuse:    cfg.StrictReuse,
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrRunFailed.Error())
	}

	if cfg.Variant == domain.VariantModule && cfg.ClasspathFile != "" {
		if err := a.writeClasspath(cfg.ClasspathFile, res.ClasspathEntries); err != nil {
			return err
		}
	}

	a.logger.Info(fmt.Sprintf(
		"%d libraries: %d transformed, %d reused, %d duplicates skipped, %d stale entries evicted",
		len(res.Libraries), res.Stats.Transformed, res.Stats.Reused, res.Stats.Skipped, res.Stats.Evicted,
	))

	if opts.JSON {
		return a.writeJSON(res)
	}
	return nil
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	if path == "" {
		path = a.workDir
	}
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// resolveTasks expands the configured sources into tasks, keeping declared source order.
func (a *App) resolveTasks(cfg *domain.Config) ([]domain.TaskRef, error) {
	var tasks []domain.TaskRef
	for _, src := range cfg.Sources {
		if len(src.Patterns) == 0 {
			continue
		}
		paths, err := a.resolver.ResolveInputs(src.Patterns, cfg.Root)
		if err != nil {
			return nil, zerr.With(err, "origin", string(src.Origin))
		}
		for _, p := range paths {
			tasks = append(tasks, domain.TaskRef{
				InputPath: p,
				Origin:    src.Origin,
				ModuleID:  src.ModuleID,
			})
		}
	}
	return tasks, nil
}

func (a *App) writeClasspath(path string, entries []string) error {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}

	if err := a.fs.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create classpath directory"), "path", path)
	}
	f, err := a.fs.Create(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write classpath file"), "path", path)
	}
	if _, err := io.WriteString(f, b.String()); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to write classpath file"), "path", path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write classpath file"), "path", path)
	}
	return nil
}

type report struct {
	Libraries []domain.LibraryRecord `json:"libraries"`
	Classpath []string               `json:"classpath,omitempty"`
	Stats     reportStats            `json:"stats"`
}

type reportStats struct {
	Transformed int `json:"transformed"`
	Reused      int `json:"reused"`
	Skipped     int `json:"skipped"`
	Evicted     int `json:"evicted"`
}

func (a *App) writeJSON(res *orchestrator.Result) error {
	libs := res.Libraries
	if libs == nil {
		libs = []domain.LibraryRecord{}
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		Libraries: libs,
		Classpath: res.ClasspathEntries,
		Stats: reportStats{
			Transformed: res.Stats.Transformed,
			Reused:      res.Stats.Reused,
			Skipped:     res.Stats.Skipped,
			Evicted:     res.Stats.Evicted,
		},
	})
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	// Outputs also removes the exploded archive directory.
	Outputs bool
}

// Clean removes the cache file and, optionally, the exploded outputs.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.loadConfig(options.ConfigPath)
	if err != nil {
		return err
	}

	remove := func(path string, name string) error {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := fs.RemoveAll(a.fs, path); err != nil {
			return zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path)
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
		return nil
	}

	if err := remove(cfg.CachePath, "cache file"); err != nil {
		return err
	}
	if options.Outputs {
		if err := remove(cfg.OutputBase, "exploded archives"); err != nil {
			return err
		}
	}
	return nil
}

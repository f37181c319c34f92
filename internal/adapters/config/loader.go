// Package config provides the configuration loader for aarcache.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// candidateNames lists the configuration file names searched for, in priority order.
var candidateNames = []string{
	domain.ConfigFileName,
	"aarcache.yml",
	"aarcache.json",
	"aarcache.jsonc",
}

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. When path is a directory, the nearest
// configuration file in it or one of its parents is used.
func (l *Loader) Load(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	configPath := abs
	if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
		configPath, err = findConfiguration(abs)
		if err != nil {
			return nil, err
		}
	}

	var file Configfile
	if err := readAndUnmarshal(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.build(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		for _, name := range candidateNames {
			candidate := filepath.Join(currentDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) build(configPath string, file *Configfile) (*domain.Config, error) {
	if file.Version != "" && file.Version != ConfigVersion {
		return nil, zerr.With(domain.ErrUnsupportedConfigVersion, "version", file.Version)
	}

	variant, err := domain.ParseVariant(file.Variant)
	if err != nil {
		return nil, zerr.With(err, "variant", file.Variant)
	}
	algorithm, err := domain.ParseDigestAlgorithm(file.HashAlgorithm)
	if err != nil {
		return nil, zerr.With(err, "hashAlgorithm", file.HashAlgorithm)
	}

	root := filepath.Dir(configPath)
	cfg := &domain.Config{
		Root:             root,
		Variant:          variant,
		CachePath:        resolvePath(root, file.CacheFile, domain.DefaultCachePath()),
		OutputBase:       resolvePath(root, file.OutputBase, domain.DefaultOutputBase()),
		Algorithm:        algorithm,
		StrictReuse:      file.StrictReuse,
		TransformCommand: file.Transform.Command,
		VariantOptions: domain.VariantOptions{
			AssetsDestinationPath:        resolvePath(root, file.AssetsDestination, ""),
			SharedLibraryDestinationPath: resolvePath(root, file.SharedLibraryDestination, ""),
		},
		ClasspathFile: resolvePath(root, file.ClasspathFile, ""),
	}

	for i, dto := range file.Sources {
		src, err := buildSource(dto)
		if err != nil {
			return nil, zerr.With(err, "source", i)
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	l.warnIgnored(cfg)
	return cfg, nil
}

func buildSource(dto SourceDTO) (domain.Source, error) {
	origin, err := domain.ParseOriginKind(dto.Origin)
	if err != nil {
		return domain.Source{}, zerr.With(err, "origin", dto.Origin)
	}
	if origin == domain.OriginModule && dto.Module == "" {
		return domain.Source{}, domain.ErrMissingModuleID
	}
	return domain.Source{
		Origin:   origin,
		ModuleID: dto.Module,
		Patterns: dto.Paths,
	}, nil
}

// warnIgnored reports options that have no effect for the selected variant.
func (l *Loader) warnIgnored(cfg *domain.Config) {
	if l.Logger == nil {
		return
	}
	switch cfg.Variant {
	case domain.VariantModule:
		if cfg.VariantOptions.AssetsDestinationPath != "" || cfg.VariantOptions.SharedLibraryDestinationPath != "" {
			l.Logger.Warn(fmt.Sprintf("asset and shared library destinations have no effect for the %s variant", cfg.Variant))
		}
	case domain.VariantApp:
		if cfg.ClasspathFile != "" {
			l.Logger.Warn(fmt.Sprintf("'classpathFile' has no effect for the %s variant", cfg.Variant))
		}
	}
}

func resolvePath(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if configured == "" {
		return ""
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(root, configured))
}

// readAndUnmarshal reads a YAML, JSON or JSONC file and unmarshals it into target.
func readAndUnmarshal[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	switch filepath.Ext(configPath) {
	case ".json", ".jsonc":
		if parseErr := json.Unmarshal(jsonc.ToJSON(data), target); parseErr != nil {
			return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
		}
	default:
		if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
			return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
		}
	}

	return nil
}

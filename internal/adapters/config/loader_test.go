package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/aarcache/internal/adapters/config"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoader_Load_YAML(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, domain.ConfigFileName, `
version: "1"
variant: app
cacheFile: build/cache.json
hashAlgorithm: blake3
strictReuse: true
assetsDestination: app/src/main/assets
sharedLibraryDestination: /abs/jniLibs
transform:
  command: ["aar-tool", "explode"]
sources:
  - origin: core
    paths: ["core/*.aar"]
  - origin: module
    module: camera
    paths: ["modules/camera/**/*.aar"]
  - paths: ["libs/*.aar"]
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, domain.VariantApp, cfg.Variant)
	assert.Equal(t, filepath.Join(root, "build", "cache.json"), cfg.CachePath)
	assert.Equal(t, filepath.Join(root, domain.WorkDirName, domain.ExplodedDirName), cfg.OutputBase)
	assert.Equal(t, domain.DigestBLAKE3, cfg.Algorithm)
	assert.True(t, cfg.StrictReuse)
	assert.Equal(t, filepath.Join(root, "app", "src", "main", "assets"), cfg.VariantOptions.AssetsDestinationPath)
	assert.Equal(t, "/abs/jniLibs", cfg.VariantOptions.SharedLibraryDestinationPath)
	assert.Equal(t, []string{"aar-tool", "explode"}, cfg.TransformCommand)
	assert.Equal(t, []domain.Source{
		{Origin: domain.OriginCore, Patterns: []string{"core/*.aar"}},
		{Origin: domain.OriginModule, ModuleID: "camera", Patterns: []string{"modules/camera/**/*.aar"}},
		{Origin: domain.OriginProject, Patterns: []string{"libs/*.aar"}},
	}, cfg.Sources)
}

func TestLoader_Load_Defaults(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, domain.ConfigFileName, "sources: []\n")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.VariantApp, cfg.Variant)
	assert.Equal(t, domain.DigestSHA256, cfg.Algorithm)
	assert.Equal(t, filepath.Join(root, domain.DefaultCachePath()), cfg.CachePath)
	assert.Equal(t, filepath.Join(root, domain.DefaultOutputBase()), cfg.OutputBase)
	assert.Empty(t, cfg.ClasspathFile)
	assert.Empty(t, cfg.TransformCommand)
	assert.Empty(t, cfg.Sources)
}

func TestLoader_Load_JSONC(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "aarcache.jsonc", `{
  // module build
  "variant": "module",
  "classpathFile": "build/classpath.txt",
  "sources": [
    {"origin": "project", "paths": ["libs/*.aar"]}, /* trailing comma below */
  ],
}`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.VariantModule, cfg.Variant)
	assert.Equal(t, filepath.Join(root, "build", "classpath.txt"), cfg.ClasspathFile)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, []string{"libs/*.aar"}, cfg.Sources[0].Patterns)
}

func TestLoader_Load_Discovery(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "variant: module\n")
	nested := filepath.Join(root, "app", "src")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, domain.VariantModule, cfg.Variant)
}

func TestLoader_Load_DiscoveryPrefersYAML(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "variant: module\n")
	createFile(t, root, "aarcache.json", `{"variant": "app"}`)

	cfg, err := newLoader(t).Load(root)
	require.NoError(t, err)
	assert.Equal(t, domain.VariantModule, cfg.Variant)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_Load_WarnsOnIgnoredOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("asset and shared library destinations have no effect for the module variant").Times(1)

	root := t.TempDir()
	path := createFile(t, root, domain.ConfigFileName, "variant: module\nassetsDestination: assets\n")

	_, err := config.NewLoader(mockLogger).Load(path)
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		errContains string
	}{
		{
			name:        "malformed yaml",
			file:        domain.ConfigFileName,
			content:     "sources: [\n",
			errContains: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:        "malformed json",
			file:        "aarcache.json",
			content:     `{"variant": }`,
			errContains: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:        "unsupported version",
			file:        domain.ConfigFileName,
			content:     "version: \"2\"\n",
			errContains: domain.ErrUnsupportedConfigVersion.Error(),
		},
		{
			name:        "invalid variant",
			file:        domain.ConfigFileName,
			content:     "variant: library\n",
			errContains: domain.ErrInvalidVariant.Error(),
		},
		{
			name:        "invalid algorithm",
			file:        domain.ConfigFileName,
			content:     "hashAlgorithm: md5\n",
			errContains: domain.ErrUnsupportedDigestAlgorithm.Error(),
		},
		{
			name:        "invalid origin",
			file:        domain.ConfigFileName,
			content:     "sources:\n  - origin: vendor\n    paths: [\"a.aar\"]\n",
			errContains: domain.ErrInvalidOrigin.Error(),
		},
		{
			name:        "module without id",
			file:        domain.ConfigFileName,
			content:     "sources:\n  - origin: module\n    paths: [\"a.aar\"]\n",
			errContains: domain.ErrMissingModuleID.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createFile(t, t.TempDir(), tt.file, tt.content)
			_, err := newLoader(t).Load(path)
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

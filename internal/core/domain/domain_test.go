package domain_test

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/aarcache/internal/core/domain"
)

func record(name, path string, origin domain.OriginKind, module, digest string) domain.LibraryRecord {
	return domain.LibraryRecord{
		DeclaredName: name,
		OutputPath:   "/out/" + name,
		Digest:       digest,
		SourceTask: domain.TaskRef{
			InputPath: path,
			Origin:    origin,
			ModuleID:  module,
		},
	}
}

func TestConflictError_Golden(t *testing.T) {
	tests := []struct {
		name   string
		first  domain.LibraryRecord
		second domain.LibraryRecord
	}{
		{
			name:   "module_module",
			first:  record("com.example.lib", "/mods/a/lib.aar", domain.OriginModule, "camera", "aaaa"),
			second: record("com.example.lib", "/mods/b/lib.aar", domain.OriginModule, "maps", "bbbb"),
		},
		{
			name:   "project_project",
			first:  record("com.example.lib", "/proj/libs/lib-1.0.aar", domain.OriginProject, "", "aaaa"),
			second: record("com.example.lib", "/proj/libs/lib-1.1.aar", domain.OriginProject, "", "bbbb"),
		},
		{
			name:   "project_module",
			first:  record("com.example.lib", "/proj/libs/lib.aar", domain.OriginProject, "", "aaaa"),
			second: record("com.example.lib", "/mods/a/lib.aar", domain.OriginModule, "camera", "bbbb"),
		},
		{
			name:   "core_core",
			first:  record("com.example.lib", "/sdk/lib-1.0.aar", domain.OriginCore, "", "aaaa"),
			second: record("com.example.lib", "/sdk/lib-1.1.aar", domain.OriginCore, "", "bbbb"),
		},
		{
			name:   "core_project",
			first:  record("com.example.lib", "/sdk/lib.aar", domain.OriginCore, "", "aaaa"),
			second: record("com.example.lib", "/proj/libs/lib.aar", domain.OriginProject, "", "bbbb"),
		},
	}

	g := goldie.New(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.NewConflictError(tt.first, tt.second)
			g.Assert(t, "conflict_"+tt.name, []byte(err.Error()))
		})
	}
}

func TestConflictError_Matching(t *testing.T) {
	first := record("com.example.lib", "/a.aar", domain.OriginProject, "", "aaaa")
	second := record("com.example.lib", "/b.aar", domain.OriginProject, "", "bbbb")

	var err error = domain.NewConflictError(first, second)

	require.ErrorIs(t, err, domain.ErrPackageConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "com.example.lib", conflict.Name)
	assert.Equal(t, "/a.aar", conflict.First.SourceTask.InputPath)
	assert.Equal(t, "/b.aar", conflict.Second.SourceTask.InputPath)
}

func TestParseVariant(t *testing.T) {
	v, err := domain.ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, domain.VariantApp, v)

	v, err = domain.ParseVariant("module")
	require.NoError(t, err)
	assert.Equal(t, domain.VariantModule, v)

	_, err = domain.ParseVariant("library")
	require.ErrorIs(t, err, domain.ErrInvalidVariant)
}

func TestParseOriginKind(t *testing.T) {
	o, err := domain.ParseOriginKind("")
	require.NoError(t, err)
	assert.Equal(t, domain.OriginProject, o)

	o, err = domain.ParseOriginKind("core")
	require.NoError(t, err)
	assert.Equal(t, domain.OriginCore, o)

	_, err = domain.ParseOriginKind("vendor")
	require.ErrorIs(t, err, domain.ErrInvalidOrigin)
}

func TestParseDigestAlgorithm(t *testing.T) {
	a, err := domain.ParseDigestAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, domain.DigestSHA256, a)

	a, err = domain.ParseDigestAlgorithm("blake3")
	require.NoError(t, err)
	assert.Equal(t, domain.DigestBLAKE3, a)

	_, err = domain.ParseDigestAlgorithm("md5")
	require.ErrorIs(t, err, domain.ErrUnsupportedDigestAlgorithm)
}

func TestTransformResult_Record(t *testing.T) {
	res := &domain.TransformResult{
		PackageName:     "com.example.lib",
		ExplodedPath:    "/out/lib",
		Jars:            []string{"/out/lib/classes.jar"},
		NativeLibraries: []string{"/out/lib/jni/arm64-v8a/libfoo.so"},
	}
	task := domain.TaskRef{InputPath: "/in/lib.aar", Origin: domain.OriginProject}

	rec := res.Record("abcd", task)
	res.Jars[0] = "mutated"

	assert.Equal(t, "com.example.lib", rec.DeclaredName)
	assert.Equal(t, "/out/lib", rec.OutputPath)
	assert.Equal(t, []string{"/out/lib/classes.jar"}, rec.ArtifactPaths)
	assert.Equal(t, "abcd", rec.Digest)
	assert.Equal(t, task, rec.SourceTask)
}

func TestTaskRef_Label(t *testing.T) {
	assert.Equal(t, "module camera", domain.TaskRef{Origin: domain.OriginModule, ModuleID: "camera"}.Label())
	assert.Equal(t, "project", domain.TaskRef{Origin: domain.OriginProject}.Label())
}

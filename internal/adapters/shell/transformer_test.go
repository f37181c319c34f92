package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/aarcache/internal/adapters/shell"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transform.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o600))
	return path
}

func TestCommandTransformer_Transform(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("exploding camera").Times(1)

	script := writeScript(t, `
echo "exploding camera" >&2
printf '{"packageName":"com.example.camera","explodedPath":"%s/camera","jars":["%s/camera/classes.jar"],"args":"%s"}' "$4" "$4" "$*"
`)

	tr := shell.NewCommandTransformer([]string{"sh", script}, mockLogger)
	res, err := tr.Transform(context.Background(), "/libs/camera.aar", "/out", domain.VariantOptions{})
	require.NoError(t, err)

	assert.Equal(t, "com.example.camera", res.PackageName)
	assert.Equal(t, "/out/camera", res.ExplodedPath)
	assert.Equal(t, []string{"/out/camera/classes.jar"}, res.Jars)
	assert.Empty(t, res.NativeLibraries)
}

func TestCommandTransformer_PassesVariantOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("--input /libs/a.aar --output /out --assets /app/assets --shared-libs /app/jni").Times(1)

	script := writeScript(t, `
echo "$*" >&2
echo '{"packageName":"com.example.a","explodedPath":"/out/a"}'
`)

	tr := shell.NewCommandTransformer([]string{"sh", script}, mockLogger)
	_, err := tr.Transform(context.Background(), "/libs/a.aar", "/out", domain.VariantOptions{
		AssetsDestinationPath:        "/app/assets",
		SharedLibraryDestinationPath: "/app/jni",
	})
	require.NoError(t, err)
}

func TestCommandTransformer_FragmentedStderr(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("part1part2"),
		mockLogger.EXPECT().Info("tail"),
	)

	script := writeScript(t, `
printf part1 >&2; sleep 0.1; echo part2 >&2
printf tail >&2
echo '{"packageName":"com.example.a","explodedPath":"/out/a"}'
`)

	tr := shell.NewCommandTransformer([]string{"sh", script}, mockLogger)
	_, err := tr.Transform(context.Background(), "/libs/a.aar", "/out", domain.VariantOptions{})
	require.NoError(t, err)
}

func TestCommandTransformer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "non zero exit",
			body:    "exit 3\n",
			wantErr: "command failed",
		},
		{
			name:    "invalid json",
			body:    "echo not-json\n",
			wantErr: "failed to decode transform result",
		},
		{
			name:    "missing package name",
			body:    `echo '{"explodedPath":"/out/a"}'` + "\n",
			wantErr: domain.ErrPackageNameMissing.Error(),
		},
		{
			name:    "missing exploded path",
			body:    `echo '{"packageName":"com.example.a"}'` + "\n",
			wantErr: "transform result has no exploded path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)

			tr := shell.NewCommandTransformer([]string{"sh", writeScript(t, tt.body)}, mockLogger)
			_, err := tr.Transform(context.Background(), "/libs/a.aar", "/out", domain.VariantOptions{})
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCommandTransformer_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := shell.NewCommandTransformer([]string{"sh", writeScript(t, "sleep 5\n")}, mockLogger)
	_, err := tr.Transform(ctx, "/libs/a.aar", "/out", domain.VariantOptions{})
	require.Error(t, err)
}

func TestProvider_Transformer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	builtin := mocks.NewMockTransformer(ctrl)

	p := shell.NewProvider(builtin, mockLogger)

	assert.Same(t, builtin, p.Transformer(nil))
	assert.IsType(t, &shell.CommandTransformer{}, p.Transformer([]string{"my-tool"}))
}

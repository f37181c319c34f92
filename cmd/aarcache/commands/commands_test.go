package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/aarcache/cmd/aarcache/commands"
	"go.trai.ch/aarcache/internal/app"
	"go.trai.ch/aarcache/internal/build"
)

type mockApp struct {
	runFunc     func(ctx context.Context, opts app.RunOptions) error
	cleanFunc   func(ctx context.Context, opts app.CleanOptions) error
	inspectFunc func(ctx context.Context, opts app.InspectOptions) error
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Inspect(ctx context.Context, opts app.InspectOptions) error {
	if m.inspectFunc != nil {
		return m.inspectFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "--config", "build/aarcache.yaml", "--variant", "module", "--strict", "--json"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, app.RunOptions{
			ConfigPath: "build/aarcache.yaml",
			Variant:    "module",
			Strict:     true,
			JSON:       true,
		}, capturedOpts)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.RunOptions{}, capturedOpts)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected app.CleanOptions
	}{
		{
			name:     "default",
			args:     []string{"clean"},
			expected: app.CleanOptions{},
		},
		{
			name:     "outputs",
			args:     []string{"clean", "--outputs"},
			expected: app.CleanOptions{Outputs: true},
		},
		{
			name:     "shorthand with config",
			args:     []string{"clean", "-o", "-c", "aarcache.json"},
			expected: app.CleanOptions{ConfigPath: "aarcache.json", Outputs: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.expected, captured)
		})
	}
}

func TestCommands_Inspect(t *testing.T) {
	var captured app.InspectOptions
	mock := &mockApp{
		inspectFunc: func(_ context.Context, opts app.InspectOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"inspect", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, captured.JSON)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "aarcache version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "version "+build.Version)
}

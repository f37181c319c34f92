// Package shell provides a transformer that delegates archive explosion to an external command.
package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/aarcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// CommandTransformer implements ports.Transformer by running an external command.
//
// The command is invoked as
//
//	<argv...> --input <aar> --output <outputBase> [--assets <dir>] [--shared-libs <dir>]
//
// and must print a JSON encoded domain.TransformResult on stdout. Stderr is
// forwarded to the logger line by line.
type CommandTransformer struct {
	command []string
	logger  ports.Logger
}

// NewCommandTransformer creates a new CommandTransformer.
func NewCommandTransformer(command []string, logger ports.Logger) *CommandTransformer {
	return &CommandTransformer{
		command: command,
		logger:  logger,
	}
}

// Transform runs the command for aarPath and decodes its result.
func (t *CommandTransformer) Transform(
	ctx context.Context,
	aarPath, outputBase string,
	opts domain.VariantOptions,
) (*domain.TransformResult, error) {
	if len(t.command) == 0 {
		return nil, zerr.New("no transform command configured")
	}

	name := t.command[0]
	args := append(append([]string{}, t.command[1:]...), "--input", aarPath, "--output", outputBase)
	if opts.AssetsDestinationPath != "" {
		args = append(args, "--assets", opts.AssetsDestinationPath)
	}
	if opts.SharedLibraryDestinationPath != "" {
		args = append(args, "--shared-libs", opts.SharedLibraryDestinationPath)
	}

	executable := name
	if !filepath.IsAbs(name) && strings.ContainsRune(name, filepath.Separator) {
		if abs, err := filepath.Abs(name); err == nil {
			executable = abs
		}
	} else if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, os.Getenv("PATH")); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	var stdout bytes.Buffer
	stderr := &logWriter{logger: t.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", name)
	}

	var res domain.TransformResult
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode transform result"), "command", name)
	}
	if res.PackageName == "" {
		return nil, zerr.With(domain.ErrPackageNameMissing, "command", name)
	}
	if res.ExplodedPath == "" {
		return nil, zerr.With(zerr.New("transform result has no exploded path"), "command", name)
	}

	return &res, nil
}

// logWriter forwards complete lines to the logger and buffers partial ones.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	w.logger.Info(line)
}

// lookPath searches for an executable in the directories of the given PATH value.
func lookPath(file, path string) (string, error) {
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/aarcache/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestConsoleHandler_Records(t *testing.T) {
	tests := []struct {
		name string
		emit func(*slog.Logger)
	}{
		{
			name: "handler_info_fields",
			emit: func(lg *slog.Logger) {
				lg.Info("exploded archive", "input", "/libs/camera-1.2.aar", "digest", "9f2c")
			},
		},
		{
			name: "handler_warn_grouped",
			emit: func(lg *slog.Logger) {
				lg.With("variant", "module").WithGroup("store").Warn("discarding cache file", "path", "/c/cache.json")
			},
		},
		{
			name: "handler_error_chain",
			emit: func(lg *slog.Logger) {
				err := zerr.With(zerr.Wrap(errors.New("exit status 1"), "transform failed"), "input", "/libs/a.aar")
				lg.Error("ignored", slog.Any(logger.ErrorKey, err), "variant", "project")
			},
		},
		{
			name: "handler_debug_filtered",
			emit: func(lg *slog.Logger) {
				lg.Debug("not shown")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			tt.emit(slog.New(logger.NewConsoleHandler(buf, slog.LevelInfo)))

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestConsoleHandler_ErrorKeyWithoutError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewConsoleHandler(buf, nil)).Warn("odd", logger.ErrorKey, "plain text")
	assert.Equal(t, "! odd error=plain text\n", buf.String())
}

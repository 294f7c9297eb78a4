package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/haul/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated
// testing. It also sets NO_COLOR=1 so output carries no ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		args       []any
		goldenName string
	}{
		{
			name:       "simple message",
			msg:        "manifest written",
			goldenName: "info_basic",
		},
		{
			name:       "message with attrs",
			msg:        "downloading tarball",
			args:       []any{"component", "libwidget", "version", 3},
			goldenName: "info_attrs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg, tt.args...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("cache miss", "component", "libwidget")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	t.Run("zerr chain renders as cause hierarchy", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Error(zerr.Wrap(zerr.New("no manifest.json found"), "fetch failed"))

		g := goldie.New(t)
		g.Assert(t, "error_chain", buf.Bytes())
	})

	t.Run("plain error", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Error(errors.New("boom"))

		g := goldie.New(t)
		g.Assert(t, "error_plain", buf.Bytes())
	})

	t.Run("nil error logs nothing", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Error(nil)
		assert.Empty(t, buf.String())
	})
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Debug("visible", "key", "value")
	assert.Equal(t, "visible key=value\n", buf.String())
}

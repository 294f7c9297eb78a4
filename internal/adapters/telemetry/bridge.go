package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/haul/internal/core/ports"
)

// logBridge implements sdktrace.SpanProcessor and forwards completed spans
// to the logger at debug level.
type logBridge struct {
	logger ports.Logger
}

func newLogBridge(logger ports.Logger) *logBridge {
	return &logBridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *logBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *logBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}

	args := []any{
		"op", s.Name(),
		"duration", s.EndTime().Sub(s.StartTime()).String(),
	}
	if s.Status().Code == codes.Error {
		args = append(args, "failed", true)
	}
	b.logger.Debug("span completed", args...)
}

// ForceFlush does nothing.
func (b *logBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *logBridge) Shutdown(_ context.Context) error {
	return nil
}

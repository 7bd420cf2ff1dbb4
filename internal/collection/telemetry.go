package collection

import (
	"log/slog"
	"time"
)

// Telemetry receives one structured event per controller operation.
type Telemetry interface {
	Observe(op Op, collection string, outcome string, latency time.Duration)
}

// SlogTelemetry emits operation events through a slog.Logger.
type SlogTelemetry struct {
	Logger *slog.Logger
}

func (t SlogTelemetry) Observe(op Op, collection string, outcome string, latency time.Duration) {
	if t.Logger == nil {
		return
	}
	t.Logger.Info("collection op",
		"operation", string(op),
		"collection", collection,
		"outcome", outcome,
		"latency", latency,
	)
}

type noopTelemetry struct{}

func (noopTelemetry) Observe(Op, string, string, time.Duration) {}

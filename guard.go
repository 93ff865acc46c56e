package toolkit

import (
	"context"
	"sync"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// shutdownTimeout bounds the flush-and-stop of each provider so a slow or
// unreachable collector cannot block process exit.
const shutdownTimeout = 100 * time.Millisecond

// Guard owns the shutdown of the telemetry pipeline installed by Init. There
// is exactly one Guard per successful Init; do not copy it. Call Shutdown
// (typically via defer) before the process exits so buffered spans, metric
// points, and log records are flushed.
type Guard struct {
	log    *zap.Logger
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
	logger *sdklog.LoggerProvider
	once   sync.Once
}

// Shutdown flushes and stops the held providers in the order tracer, meter,
// logger. Each provider gets shutdownTimeout of wall-clock time; failures
// are swallowed. Shutdown is idempotent and never panics.
func (g *Guard) Shutdown() {
	g.once.Do(func() {
		if g.log != nil {
			_ = g.log.Sync()
		}
		if g.tracer != nil {
			flushAndStop(g.tracer.ForceFlush, g.tracer.Shutdown)
		}
		if g.meter != nil {
			flushAndStop(g.meter.ForceFlush, g.meter.Shutdown)
		}
		if g.logger != nil {
			flushAndStop(g.logger.ForceFlush, g.logger.Shutdown)
		}
	})
}

// flushAndStop runs a provider's ForceFlush and Shutdown under one shared
// shutdownTimeout deadline, discarding both results.
func flushAndStop(flush, stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = flush(ctx)
	_ = stop(ctx)
}

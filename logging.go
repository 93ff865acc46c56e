package toolkit

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// filterCore applies the pipeline's level filter around a core that would
// otherwise accept every entry (the OTel log bridge).
type filterCore struct {
	zapcore.Core
	enab zapcore.LevelEnabler
}

func newFilterCore(core zapcore.Core, enab zapcore.LevelEnabler) zapcore.Core {
	return filterCore{Core: core, enab: enab}
}

func (c filterCore) Enabled(lvl zapcore.Level) bool {
	return c.enab.Enabled(lvl)
}

func (c filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.enab.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

func (c filterCore) With(fields []zapcore.Field) zapcore.Core {
	return filterCore{Core: c.Core.With(fields), enab: c.enab}
}

// L returns the process-global logger installed by Init. Before Init it is
// the zap no-op logger.
func L() *zap.Logger { return zap.L() }

// Debug logs a debug event through the installed pipeline.
func Debug(msg string, fields ...zap.Field) { zap.L().Debug(msg, fields...) }

// Info logs an info event through the installed pipeline.
func Info(msg string, fields ...zap.Field) { zap.L().Info(msg, fields...) }

// Warn logs a warning event through the installed pipeline.
func Warn(msg string, fields ...zap.Field) { zap.L().Warn(msg, fields...) }

// Error logs an error event through the installed pipeline.
func Error(msg string, fields ...zap.Field) { zap.L().Error(msg, fields...) }

// TraceFields returns trace_id and span_id fields for the span recorded in
// ctx, or nil when ctx carries no valid span. Used to correlate log lines
// with exported traces.
func TraceFields(ctx context.Context) []zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// Ctx returns the global logger annotated with the trace correlation fields
// from ctx, when present.
func Ctx(ctx context.Context) *zap.Logger {
	fields := TraceFields(ctx)
	if len(fields) == 0 {
		return zap.L()
	}
	return zap.L().With(fields...)
}

// Tracer returns a named tracer from the globally installed provider.
func Tracer(name string) trace.Tracer { return otel.Tracer(name) }

// Meter returns a named meter from the globally installed provider.
func Meter(name string) metric.Meter { return otel.Meter(name) }

// StartSpan starts a span on the named tracer. The caller must End the
// returned span.
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}

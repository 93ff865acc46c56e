/*
Package toolkit wires a structured, leveled logging pipeline and optional
OpenTelemetry export into a single process-wide setup. A fluent Builder
configures the log sinks (stdout and/or file, JSON or console format) and the
OTLP/HTTP endpoints for traces, metrics, and logs; Init assembles the
pipeline, installs the global logger and providers exactly once, and returns
a Guard whose Shutdown flushes and stops the exporters.
*/
package toolkit

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelog "go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultLogFile is the file path selected by WithPredefinedFile.
	DefaultLogFile = "./log.txt"

	// EnvLogLevel is the environment variable consulted for the log level
	// when no filter is set on the Builder. Empty means no events pass.
	EnvLogLevel = "LOG_LEVEL"
)

// OTelParams holds the OpenTelemetry export configuration. An empty endpoint
// disables the corresponding exporter.
type OTelParams struct {
	EndpointTraces  string
	EndpointMetrics string
	EndpointLogs    string
	ServiceName     string
	ServiceVersion  string
}

// DefaultOTelParams returns params pointing at a local OTLP/HTTP collector
// (localhost:4318) with all three signals enabled.
func DefaultOTelParams(serviceName, serviceVersion string) OTelParams {
	return OTelParams{
		EndpointTraces:  "http://localhost:4318/v1/traces",
		EndpointMetrics: "http://localhost:4318/v1/metrics",
		EndpointLogs:    "http://localhost:4318/v1/logs",
		ServiceName:     serviceName,
		ServiceVersion:  serviceVersion,
	}
}

// Builder configures the telemetry pipeline. All setters return the Builder
// for chaining; call Init to assemble and install the pipeline.
type Builder struct {
	json           bool
	stdout         bool
	filePath       string
	logFilter      string
	filterSet      bool
	otel           *OTelParams
	metricInterval time.Duration
}

// NewBuilder returns a Builder with stdout output and JSON formatting
// enabled, no file sink, and no OpenTelemetry export.
func NewBuilder() *Builder {
	return &Builder{json: true, stdout: true}
}

// WithJSON selects JSON (true) or console (false) formatting. The format
// applies to both the stdout and the file sink.
func (b *Builder) WithJSON(v bool) *Builder {
	b.json = v
	return b
}

// WithStdout enables or disables the stdout sink.
func (b *Builder) WithStdout(v bool) *Builder {
	b.stdout = v
	return b
}

// WithFile enables a file sink at the given path. The file is created or
// truncated when Init runs. An empty path disables the sink.
func (b *Builder) WithFile(path string) *Builder {
	b.filePath = path
	return b
}

// WithPredefinedFile enables the file sink at DefaultLogFile.
func (b *Builder) WithPredefinedFile() *Builder {
	b.filePath = DefaultLogFile
	return b
}

// WithLogFilter sets the minimum level expression ("debug", "info", "warn",
// "error", ...). When never called, the level is read from EnvLogLevel; an
// empty expression drops every event.
func (b *Builder) WithLogFilter(expr string) *Builder {
	b.logFilter = expr
	b.filterSet = true
	return b
}

// WithOTel enables OpenTelemetry export with the given params.
func (b *Builder) WithOTel(p OTelParams) *Builder {
	b.otel = &p
	return b
}

// WithMetricExportInterval sets the period between metric flushes. When not
// set, the SDK's periodic reader falls back to the OTEL_METRIC_EXPORT_INTERVAL
// environment variable and then to its own default.
func (b *Builder) WithMetricExportInterval(d time.Duration) *Builder {
	b.metricInterval = d
	return b
}

// installed guards the one-shot pipeline install for this process.
var installed atomic.Bool

// Init assembles the configured pipeline and installs it process-wide. On
// success the returned Guard owns the exporter shutdown; call its Shutdown
// before process exit. Init fails with a *FileSinkError when the log file
// cannot be created, an *ExporterError when an OTLP exporter cannot be
// built, and ErrAlreadyInstalled when a pipeline is already installed.
func (b *Builder) Init(ctx context.Context) (*Guard, error) {
	enab, err := b.levelEnabler()
	if err != nil {
		return nil, err
	}

	guard := &Guard{}
	var cores []zapcore.Core

	if b.filePath != "" {
		f, err := os.Create(b.filePath)
		if err != nil {
			return nil, &FileSinkError{Path: b.filePath, Err: err}
		}
		// No ANSI escapes ever reach the file.
		cores = append(cores, zapcore.NewCore(newEncoder(b.json, false), zapcore.AddSync(f), enab))
	}

	if b.stdout {
		cores = append(cores, zapcore.NewCore(newEncoder(b.json, true), zapcore.Lock(os.Stdout), enab))
	}

	if b.otel != nil {
		otel.SetTextMapPropagator(propagation.TraceContext{})

		res := resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceNameKey.String(b.otel.ServiceName),
			semconv.ServiceVersionKey.String(b.otel.ServiceVersion),
		)

		if ep := b.otel.EndpointTraces; ep != "" {
			exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(ep))
			if err != nil {
				return nil, &ExporterError{Signal: "traces", Err: err}
			}
			tp := sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(exp),
				sdktrace.WithResource(res),
			)
			otel.SetTracerProvider(tp)
			guard.tracer = tp
		}

		if ep := b.otel.EndpointMetrics; ep != "" {
			exp, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(ep))
			if err != nil {
				return nil, &ExporterError{Signal: "metrics", Err: err}
			}
			var readerOpts []sdkmetric.PeriodicReaderOption
			if b.metricInterval > 0 {
				readerOpts = append(readerOpts, sdkmetric.WithInterval(b.metricInterval))
			}
			mp := sdkmetric.NewMeterProvider(
				sdkmetric.WithResource(res),
				sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, readerOpts...)),
			)
			otel.SetMeterProvider(mp)
			guard.meter = mp
		}

		if ep := b.otel.EndpointLogs; ep != "" {
			exp, err := otlploghttp.New(ctx, otlploghttp.WithEndpointURL(ep))
			if err != nil {
				return nil, &ExporterError{Signal: "logs", Err: err}
			}
			lp := sdklog.NewLoggerProvider(
				sdklog.WithResource(res),
				sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
			)
			otelog.SetLoggerProvider(lp)
			// The bridge core accepts every level on its own, so the
			// pipeline's filter is applied around it.
			bridge := otelzap.NewCore(b.otel.ServiceName, otelzap.WithLoggerProvider(lp))
			cores = append(cores, newFilterCore(bridge, enab))
			guard.logger = lp
		}
	}

	// Installing the logger is the last fallible step; a failure here must
	// not claim the install slot.
	if !installed.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInstalled
	}

	zlog := zap.New(zapcore.NewTee(cores...))
	zap.ReplaceGlobals(zlog)
	guard.log = zlog
	return guard, nil
}

// levelEnabler resolves the configured filter expression into a zap level
// enabler. An empty expression yields an enabler that drops everything.
func (b *Builder) levelEnabler() (zapcore.LevelEnabler, error) {
	expr := b.logFilter
	if !b.filterSet {
		expr = os.Getenv(EnvLogLevel)
	}
	if expr == "" {
		return zap.LevelEnablerFunc(func(zapcore.Level) bool { return false }), nil
	}
	lvl, err := zapcore.ParseLevel(expr)
	if err != nil {
		return nil, fmt.Errorf("parse log filter %q: %w", expr, err)
	}
	return lvl, nil
}

// newEncoder builds the zap encoder for one sink. Color codes are only
// emitted by the console encoder when color is true.
func newEncoder(json, color bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if json {
		return zapcore.NewJSONEncoder(cfg)
	}
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

package toolkit

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// EnvConfig mirrors the Builder fields as environment variables so services
// can configure the pipeline without code changes. Endpoint and service
// identity variables follow the standard OTel names.
type EnvConfig struct {
	LogLevel string `env:"LOG_LEVEL"`
	JSON     bool   `env:"LOG_JSON" envDefault:"true"`
	Stdout   bool   `env:"LOG_STDOUT" envDefault:"true"`
	FilePath string `env:"LOG_FILE"`

	TracesEndpoint  string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	MetricsEndpoint string `env:"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"`
	LogsEndpoint    string `env:"OTEL_EXPORTER_OTLP_LOGS_ENDPOINT"`
	ServiceName     string `env:"OTEL_SERVICE_NAME"`
	ServiceVersion  string `env:"OTEL_SERVICE_VERSION"`

	// Milliseconds between periodic metric flushes.
	MetricExportIntervalMS int64 `env:"OTEL_METRIC_EXPORT_INTERVAL"`
}

// BuilderFromEnv parses an EnvConfig from the process environment and
// returns the equivalent Builder. OpenTelemetry export is enabled when
// OTEL_SERVICE_NAME is set.
func BuilderFromEnv() (*Builder, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	b := NewBuilder().WithJSON(cfg.JSON).WithStdout(cfg.Stdout)
	if cfg.FilePath != "" {
		b = b.WithFile(cfg.FilePath)
	}
	if cfg.LogLevel != "" {
		b = b.WithLogFilter(cfg.LogLevel)
	}
	if cfg.MetricExportIntervalMS > 0 {
		b = b.WithMetricExportInterval(time.Duration(cfg.MetricExportIntervalMS) * time.Millisecond)
	}
	if cfg.ServiceName != "" {
		b = b.WithOTel(OTelParams{
			EndpointTraces:  cfg.TracesEndpoint,
			EndpointMetrics: cfg.MetricsEndpoint,
			EndpointLogs:    cfg.LogsEndpoint,
			ServiceName:     cfg.ServiceName,
			ServiceVersion:  cfg.ServiceVersion,
		})
	}
	return b, nil
}

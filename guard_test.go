package toolkit_test

import (
	"context"
	"testing"
	"time"

	toolkit "github.com/availproject/engineering-toolkit"
	"github.com/stretchr/testify/require"
)

func TestGuard_ShutdownIdempotent(t *testing.T) {
	// Reset global state so that no pipeline is installed.
	toolkit.ResetState()

	ctx := context.Background()

	guard, err := toolkit.NewBuilder().
		WithStdout(false).
		WithLogFilter("info").
		Init(ctx)
	require.NoError(t, err, "expected no error during Init")

	// Calling Shutdown twice must be safe.
	guard.Shutdown()
	guard.Shutdown()
}

func TestGuard_ShutdownBounded(t *testing.T) {
	// Reset global state so that no pipeline is installed.
	toolkit.ResetState()

	ctx := context.Background()

	// Port 1 is unreachable; exporter construction still succeeds because
	// nothing connects until export.
	guard, err := toolkit.NewBuilder().
		WithStdout(false).
		WithLogFilter("info").
		WithOTel(toolkit.OTelParams{
			EndpointTraces:  "http://127.0.0.1:1/v1/traces",
			EndpointMetrics: "http://127.0.0.1:1/v1/metrics",
			EndpointLogs:    "http://127.0.0.1:1/v1/logs",
			ServiceName:     "svc",
			ServiceVersion:  "1.0",
		}).
		Init(ctx)
	require.NoError(t, err, "expected no error during Init")

	// Queue some telemetry so the release path has something to flush.
	_, span := toolkit.StartSpan(ctx, "svc", "flush-probe")
	span.End()
	toolkit.Info("queued for export")

	// Release holds each provider to a 100ms flush-and-stop ceiling; allow
	// generous slack for scheduler noise.
	start := time.Now()
	guard.Shutdown()
	require.LessOrEqual(t, time.Since(start), time.Second,
		"guard release must be bounded even with an unreachable collector")
}

package toolkit_test

import (
	"context"
	"testing"

	toolkit "github.com/availproject/engineering-toolkit"
	"github.com/stretchr/testify/require"
	sdkMetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestRuntimeMetrics verifies that the runtime gauges are registered and
// produce plausible values on collection.
func TestRuntimeMetrics(t *testing.T) {
	ctx := context.Background()

	reader := sdkMetric.NewManualReader()
	mp := sdkMetric.NewMeterProvider(sdkMetric.WithReader(reader))
	meter := mp.Meter("test-meter")

	_, err := toolkit.NewRuntimeMetrics(meter)
	require.NoError(t, err, "unexpected error creating RuntimeMetrics")

	var rm metricdata.ResourceMetrics
	err = reader.Collect(ctx, &rm)
	require.NoError(t, err, "failed to collect metrics")

	goroutines := findGaugeValue(t, rm, "process.runtime.go.goroutines")
	require.Positive(t, goroutines, "expected at least one live goroutine")

	heap := findGaugeValue(t, rm, "process.runtime.go.mem.heap_alloc")
	require.Positive(t, heap, "expected a non-zero heap")

	uptime := findGaugeValue(t, rm, "process.uptime")
	require.GreaterOrEqual(t, uptime, int64(0))
}

package toolkit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// findMetric scans the ResourceMetrics for a metric with the given name.
func findMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	require.Failf(t, "metric not found", "metric %q not found in ResourceMetrics", name)
	return metricdata.Metrics{}
}

// findIntSum scans through the ResourceMetrics for the Sum[int64] metric
// with the specified name and sums the values of all its data points.
func findIntSum(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(t, rm, name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64] for metric %q", name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

// findIntHistogram scans the ResourceMetrics for a Histogram[int64] metric
// with the given name and returns its first data point.
func findIntHistogram(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.HistogramDataPoint[int64] {
	t.Helper()
	m := findMetric(t, rm, name)
	hist, ok := m.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "expected Histogram[int64] for metric %q", name)
	require.NotEmpty(t, hist.DataPoints, "histogram %q has no data points", name)
	return hist.DataPoints[0]
}

// findGaugeValue scans the ResourceMetrics for a Gauge[int64] metric with
// the given name and returns the value of its first data point.
func findGaugeValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(t, rm, name)
	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "expected Gauge[int64] for metric %q", name)
	require.NotEmpty(t, gauge.DataPoints, "gauge %q has no data points", name)
	return gauge.DataPoints[0].Value
}

package toolkit

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// durationBoundaries are the explicit histogram bucket boundaries, in
// milliseconds, shared by the HTTP and DB duration instruments. Order
// matters; the SDK rejects reordered or duplicated bounds.
var durationBoundaries = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// HTTPRequestCounter returns the canonical HTTP request counter.
func HTTPRequestCounter(meter metric.Meter) (metric.Int64Counter, error) {
	return meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("1"),
	)
}

// HTTPRequestDuration returns the canonical HTTP request duration histogram.
func HTTPRequestDuration(meter metric.Meter) (metric.Int64Histogram, error) {
	return meter.Int64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(durationBoundaries...),
	)
}

// DBOperationCounter returns the canonical database operation counter.
func DBOperationCounter(meter metric.Meter) (metric.Int64Counter, error) {
	return meter.Int64Counter("db.client.operation.total",
		metric.WithDescription("Total number of database operations"),
		metric.WithUnit("1"),
	)
}

// DBOperationDuration returns the canonical database operation duration
// histogram.
func DBOperationDuration(meter metric.Meter) (metric.Int64Histogram, error) {
	return meter.Int64Histogram("db.client.operation.duration",
		metric.WithDescription("Database operation duration"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(durationBoundaries...),
	)
}

// Metrics bundles the four canonical instruments plus the meter they were
// created from. The OTel SDK deduplicates instruments by name, so building
// Metrics twice from the same meter yields equivalent instruments.
type Metrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Int64Histogram
	DBOperationsTotal   metric.Int64Counter
	DBOperationDuration metric.Int64Histogram

	meter metric.Meter
}

// NewMetrics creates all four canonical instruments from the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}
	var err error

	if m.HTTPRequestsTotal, err = HTTPRequestCounter(meter); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = HTTPRequestDuration(meter); err != nil {
		return nil, err
	}
	if m.DBOperationsTotal, err = DBOperationCounter(meter); err != nil {
		return nil, err
	}
	if m.DBOperationDuration, err = DBOperationDuration(meter); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordHTTPRequest counts the request and, when the descriptor carries a
// duration, records it on the duration histogram.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, r HTTPRequestMetrics) {
	attrs := metric.WithAttributes(r.Attributes()...)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	if r.hasDuration {
		m.HTTPRequestDuration.Record(ctx, r.durationMS, attrs)
	}
}

// RecordDBQuery counts the operation and records its duration.
func (m *Metrics) RecordDBQuery(ctx context.Context, q DBQueryMetrics) {
	attrs := metric.WithAttributes(q.Attributes()...)
	m.DBOperationsTotal.Add(ctx, 1, attrs)
	m.DBOperationDuration.Record(ctx, q.durationMS, attrs)
}

// Counter returns an ad-hoc counter from the bundled meter.
func (m *Metrics) Counter(name string) (metric.Int64Counter, error) {
	return m.meter.Int64Counter(name)
}

// Histogram returns an ad-hoc histogram from the bundled meter.
func (m *Metrics) Histogram(name string) (metric.Float64Histogram, error) {
	return m.meter.Float64Histogram(name)
}

// UpDownCounter returns an ad-hoc up-down counter from the bundled meter.
func (m *Metrics) UpDownCounter(name string) (metric.Int64UpDownCounter, error) {
	return m.meter.Int64UpDownCounter(name)
}

// RecordCount adds n to the counter with the attributes of src. It accepts
// any AttributeSource, so callers can record their own descriptor types.
func RecordCount(ctx context.Context, counter metric.Int64Counter, src AttributeSource, n int64) {
	counter.Add(ctx, n, metric.WithAttributes(src.Attributes()...))
}

// RecordDuration records ms on the histogram with the attributes of src.
func RecordDuration(ctx context.Context, hist metric.Int64Histogram, src AttributeSource, ms int64) {
	hist.Record(ctx, ms, metric.WithAttributes(src.Attributes()...))
}

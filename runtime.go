package toolkit

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics holds asynchronous gauges for goroutine count, heap usage,
// and process uptime. The OpenTelemetry SDK samples them once per metric
// export interval through a registered callback.
type RuntimeMetrics struct {
	goroutines metric.Int64ObservableGauge
	heapAlloc  metric.Int64ObservableGauge
	uptime     metric.Int64ObservableGauge

	startTime time.Time
}

// NewRuntimeMetrics creates and registers the runtime gauges on the given
// meter.
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	rm := &RuntimeMetrics{startTime: time.Now()}
	var err error

	rm.goroutines, err = meter.Int64ObservableGauge("process.runtime.go.goroutines",
		metric.WithDescription("Number of live goroutines"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}
	rm.heapAlloc, err = meter.Int64ObservableGauge("process.runtime.go.mem.heap_alloc",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}
	rm.uptime, err = meter.Int64ObservableGauge("process.uptime",
		metric.WithDescription("Seconds since the process started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(
		func(_ context.Context, obs metric.Observer) error {
			obs.ObserveInt64(rm.goroutines, int64(runtime.NumGoroutine()))

			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)
			obs.ObserveInt64(rm.heapAlloc, int64(mem.HeapAlloc))

			obs.ObserveInt64(rm.uptime, int64(time.Since(rm.startTime).Seconds()))
			return nil
		},
		rm.goroutines, rm.heapAlloc, rm.uptime,
	)
	if err != nil {
		return nil, err
	}

	return rm, nil
}

package toolkit

import "go.opentelemetry.io/otel/attribute"

// AttributeSource is implemented by metric descriptors that render
// themselves as an ordered OpenTelemetry attribute sequence. Callers can
// define their own descriptor types and hand them to the generic recording
// routines in this package.
type AttributeSource interface {
	Attributes() []attribute.KeyValue
}

// HTTPRequestMetrics describes a single HTTP request for counter and
// histogram recording. It is a value; every setter returns a modified copy,
// so descriptors can be built fluently and safely forked.
type HTTPRequestMetrics struct {
	method      string
	route       string
	statusCode  int
	errType     string
	extra       []extraAttr
	durationMS  int64
	hasDuration bool
}

type extraAttr struct {
	key   string
	value string
}

// NewHTTPRequest returns a descriptor with method GET, an empty route, and
// status code 200.
func NewHTTPRequest() HTTPRequestMetrics {
	return HTTPRequestMetrics{method: "GET", statusCode: 200}
}

// Get sets the method to GET.
func (m HTTPRequestMetrics) Get() HTTPRequestMetrics {
	m.method = "GET"
	return m
}

// Post sets the method to POST.
func (m HTTPRequestMetrics) Post() HTTPRequestMetrics {
	m.method = "POST"
	return m
}

// Put sets the method to PUT.
func (m HTTPRequestMetrics) Put() HTTPRequestMetrics {
	m.method = "PUT"
	return m
}

// Delete sets the method to DELETE.
func (m HTTPRequestMetrics) Delete() HTTPRequestMetrics {
	m.method = "DELETE"
	return m
}

// Patch sets the method to PATCH.
func (m HTTPRequestMetrics) Patch() HTTPRequestMetrics {
	m.method = "PATCH"
	return m
}

// OK sets status code 200.
func (m HTTPRequestMetrics) OK() HTTPRequestMetrics {
	m.statusCode = 200
	return m
}

// BadRequest sets status code 400.
func (m HTTPRequestMetrics) BadRequest() HTTPRequestMetrics {
	m.statusCode = 400
	return m
}

// Conflict sets status code 409.
func (m HTTPRequestMetrics) Conflict() HTTPRequestMetrics {
	m.statusCode = 409
	return m
}

// InternalServerError sets status code 500.
func (m HTTPRequestMetrics) InternalServerError() HTTPRequestMetrics {
	m.statusCode = 500
	return m
}

// Route sets the matched route template, e.g. "/orders/{id}".
func (m HTTPRequestMetrics) Route(v string) HTTPRequestMetrics {
	m.route = v
	return m
}

// StatusCode sets the response status code.
func (m HTTPRequestMetrics) StatusCode(code int) HTTPRequestMetrics {
	m.statusCode = code
	return m
}

// Error sets the error.type attribute value.
func (m HTTPRequestMetrics) Error(v string) HTTPRequestMetrics {
	m.errType = v
	return m
}

// Extra appends a custom attribute pair. Insertion order is preserved in
// the produced attribute sequence.
func (m HTTPRequestMetrics) Extra(key, value string) HTTPRequestMetrics {
	// Copied so forked descriptors never share backing storage.
	extras := make([]extraAttr, len(m.extra), len(m.extra)+1)
	copy(extras, m.extra)
	m.extra = append(extras, extraAttr{key: key, value: value})
	return m
}

// Duration sets the request duration in milliseconds. Descriptors without a
// duration only feed the request counter, not the histogram.
func (m HTTPRequestMetrics) Duration(ms int64) HTTPRequestMetrics {
	m.durationMS = ms
	m.hasDuration = true
	return m
}

// Attributes yields, in order: http.request.method, http.route,
// http.response.status_code, then error.type when set, then the extra pairs
// in insertion order.
func (m HTTPRequestMetrics) Attributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4+len(m.extra))
	attrs = append(attrs,
		attribute.String("http.request.method", m.method),
		attribute.String("http.route", m.route),
		attribute.Int64("http.response.status_code", int64(m.statusCode)),
	)
	if m.errType != "" {
		attrs = append(attrs, attribute.String("error.type", m.errType))
	}
	for _, kv := range m.extra {
		attrs = append(attrs, attribute.String(kv.key, kv.value))
	}
	return attrs
}

package toolkit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// defaultMaxConns caps the pool when the caller does not pass a limit.
const defaultMaxConns = 5

// NewPool builds a Postgres connection pool for the given URL. A maxConns
// of zero or less selects the default of 5. Pool errors are returned
// unchanged.
func NewPool(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	cfg.MaxConns = maxConns
	return pgxpool.NewWithConfig(ctx, cfg)
}

// DBQueryMetrics describes a single database operation for counter and
// histogram recording. Like HTTPRequestMetrics it is a fluent value type.
type DBQueryMetrics struct {
	system     string
	operation  string
	durationMS int64
	success    bool
	errType    string
}

// NewDBQuery returns a successful descriptor for one operation against the
// named database system, e.g. NewDBQuery("postgresql", "SELECT").
func NewDBQuery(system, operation string) DBQueryMetrics {
	return DBQueryMetrics{system: system, operation: operation, success: true}
}

// Duration sets the operation duration in milliseconds.
func (q DBQueryMetrics) Duration(ms int64) DBQueryMetrics {
	q.durationMS = ms
	return q
}

// Failed marks the operation as failed with the generic db_error type.
func (q DBQueryMetrics) Failed() DBQueryMetrics {
	q.success = false
	return q
}

// FailedWith marks the operation as failed and derives error.type from the
// error's category (pg error codes, timeouts, network failures, ...).
func (q DBQueryMetrics) FailedWith(err error) DBQueryMetrics {
	q.success = false
	q.errType = classifyError(err)
	return q
}

// Attributes yields db.system and db.operation.name, plus error.type when
// the operation failed.
func (q DBQueryMetrics) Attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", q.system),
		attribute.String("db.operation.name", q.operation),
	}
	if !q.success {
		errType := q.errType
		if errType == "" {
			errType = "db_error"
		}
		attrs = append(attrs, attribute.String("error.type", errType))
	}
	return attrs
}

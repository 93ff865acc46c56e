package toolkit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrAlreadyInstalled is returned by Init when a telemetry pipeline has
// already been installed in this process.
var ErrAlreadyInstalled = errors.New("telemetry pipeline already installed")

// FileSinkError reports that the configured log file could not be created.
type FileSinkError struct {
	Path string
	Err  error
}

func (e *FileSinkError) Error() string {
	return fmt.Sprintf("create log file %s: %v", e.Path, e.Err)
}

func (e *FileSinkError) Unwrap() error { return e.Err }

// ExporterError reports that an OTLP exporter could not be constructed.
// Signal is one of "traces", "metrics", or "logs".
type ExporterError struct {
	Signal string
	Err    error
}

func (e *ExporterError) Error() string {
	return fmt.Sprintf("build OTLP %s exporter: %v", e.Signal, e.Err)
}

func (e *ExporterError) Unwrap() error { return e.Err }

// classifyError inspects the given error and returns a
// string-based category ("timeout", "network", "invalid_input" etc.)
// suitable for an error.type metric attribute.
func classifyError(err error) string {
	if err == nil {
		return "" // no error
	}

	// Context-level checks (canceled, timed out).
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	// Network errors (using net.Error interface).
	// This categorizes typical transient vs. permanent network issues.
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "network_timeout"
		}
		return "network"
	}

	// Check for parse/syntax errors.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "parse") || strings.Contains(msg, "syntax") {
		return "invalid_input"
	}

	// Check for known PostgreSQL errors.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return "db_unique_violation"
		case pgerrcode.ForeignKeyViolation:
			return "db_fk_violation"
		default:
			return "db_error"
		}
	}

	// Check for gRPC errors.
	if s, ok := status.FromError(err); ok && s.Code() != codes.OK {
		switch s.Code() {
		case codes.DeadlineExceeded:
			return "grpc_timeout"
		case codes.NotFound:
			return "grpc_not_found"
		case codes.InvalidArgument:
			return "grpc_invalid_arg"
		default:
			return "grpc_" + s.Code().String()
		}
	}

	// Default or unknown.
	return "unknown"
}

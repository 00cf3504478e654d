package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-user-directory/internal/types"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LoginAttemptsTotal         metric.Int64Counter
	DirectoryOperationsTotal   metric.Int64Counter
	DirectoryOperationDuration metric.Float64Histogram
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var (
		m   AppMetrics
		err error
	)

	m.LoginAttemptsTotal, err = meter.Int64Counter(
		"login_attempts_total",
		metric.WithDescription("Login attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create login_attempts_total: %w", err)
	}

	m.DirectoryOperationsTotal, err = meter.Int64Counter(
		"directory_operations_total",
		metric.WithDescription("Directory operations by name and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create directory_operations_total: %w", err)
	}

	m.DirectoryOperationDuration, err = meter.Float64Histogram(
		"directory_operation_duration_seconds",
		metric.WithDescription("Duration of directory operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create directory_operation_duration_seconds: %w", err)
	}

	return &m, nil
}

// RecordLogin counts one login attempt. A nil receiver is a no-op.
func (m *AppMetrics) RecordLogin(ctx context.Context, err error) {
	if m == nil {
		return
	}
	m.LoginAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", types.ErrorKind(err)),
	))
}

// RecordOperation counts a directory operation and its duration.
func (m *AppMetrics) RecordOperation(ctx context.Context, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", types.ErrorKind(err)),
	)
	m.DirectoryOperationsTotal.Add(ctx, 1, attrs)
	m.DirectoryOperationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

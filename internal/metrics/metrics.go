package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	Database *DatabaseMetrics

	marksRecorded    metric.Int64Counter
	averagesComputed metric.Int64Counter
	loginsSucceeded  metric.Int64Counter
	loginsFailed     metric.Int64Counter
	eventsPublished  metric.Int64Counter
}

func New(serviceName string) (*Metrics, error) {
	meter := otel.Meter(serviceName)

	database, err := NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	m := &Metrics{Database: database}

	m.marksRecorded, err = meter.Int64Counter(
		"dean_office.marks.recorded",
		metric.WithDescription("Total number of marks recorded"),
		metric.WithUnit("{mark}"),
	)
	if err != nil {
		return nil, err
	}

	m.averagesComputed, err = meter.Int64Counter(
		"dean_office.average_grade.computed",
		metric.WithDescription("Total number of average grade reports computed"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, err
	}

	m.loginsSucceeded, err = meter.Int64Counter(
		"dean_office.logins.succeeded",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.loginsFailed, err = meter.Int64Counter(
		"dean_office.logins.failed",
		metric.WithDescription("Total number of failed logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.eventsPublished, err = meter.Int64Counter(
		"dean_office.events.published",
		metric.WithDescription("Total number of domain events published"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{
		Database: &DatabaseMetrics{},
	}
}

func (m *Metrics) RecordMarkRecorded(ctx context.Context) {
	if m != nil && m.marksRecorded != nil {
		m.marksRecorded.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAverageComputed(ctx context.Context, dimension string) {
	if m != nil && m.averagesComputed != nil {
		m.averagesComputed.Add(ctx, 1, metric.WithAttributes(attribute.String("dimension", dimension)))
	}
}

func (m *Metrics) RecordLogin(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	if ok {
		if m.loginsSucceeded != nil {
			m.loginsSucceeded.Add(ctx, 1)
		}
		return
	}
	if m.loginsFailed != nil {
		m.loginsFailed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordEventPublished(ctx context.Context, subject string) {
	if m != nil && m.eventsPublished != nil {
		m.eventsPublished.Add(ctx, 1, metric.WithAttributes(attribute.String("subject", subject)))
	}
}

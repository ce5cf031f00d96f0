package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/snipops/snippetd/shell"
)

// bootMetrics holds the instruments the service records outside the HTTP
// middleware: registration outcomes and ingestion handoffs.
type bootMetrics struct {
	registrations metric.Int64Counter
	blobs         metric.Int64Counter
}

func newBootMetrics(meter metric.Meter) (*bootMetrics, error) {
	registrations, err := meter.Int64Counter(
		"app.module.registrations",
		metric.WithDescription("Module registration attempts by outcome"),
		metric.WithUnit("{module}"),
	)
	if err != nil {
		return nil, err
	}

	blobs, err := meter.Int64Counter(
		"app.ingestion.blobs",
		metric.WithDescription("Blobs handed off to the ingestion sink"),
		metric.WithUnit("{blob}"),
	)
	if err != nil {
		return nil, err
	}

	return &bootMetrics{registrations: registrations, blobs: blobs}, nil
}

// RecordOutcome counts one module registration attempt.
func (m *bootMetrics) RecordOutcome(ctx context.Context, outcome shell.Outcome) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("module", outcome.Module),
		attribute.Bool("ok", outcome.OK),
		attribute.String("failure", outcome.Kind.String()),
	))
}

// RecordBlob counts one ingestion handoff.
func (m *bootMetrics) RecordBlob(ctx context.Context) {
	m.blobs.Add(ctx, 1)
}

package sink

import (
	"context"

	"ybelaid/dzadscraper/internal/record"
	"ybelaid/dzadscraper/logger"
)

// Sink persists one batch of assembled records. Implementations must
// tolerate being called with an empty batch.
type Sink interface {
	// Name identifies the sink in logs and configuration.
	Name() string

	// Write persists a batch of records.
	Write(ctx context.Context, records []*record.Record) error

	// Close releases the sink's resources.
	Close() error
}

// Noop counts and logs batches without persisting anything. Useful for
// dry runs and as the fallback when no real sink is configured.
type Noop struct {
	log *logger.Logger
}

// NewNoop creates a no-op sink.
func NewNoop() *Noop {
	return &Noop{log: logger.ForSink("noop")}
}

func (n *Noop) Name() string { return "noop" }

func (n *Noop) Write(_ context.Context, records []*record.Record) error {
	n.log.Info().Int("records", len(records)).Msg("Discarding batch")
	return nil
}

func (n *Noop) Close() error { return nil }

// Package ingestion watches the snippet-input container and hands each new
// blob name to a sink, the standing-trigger analog of the original upload
// pipeline. What happens to a blob after the handoff is the sink's business.
package ingestion

import (
	"context"
	"errors"
	"time"

	"github.com/snipops/snippetd/observe"
	"github.com/snipops/snippetd/shell"
)

// DefaultInterval is the polling cadence when none is configured.
const DefaultInterval = 30 * time.Second

var (
	// ErrNoLister indicates the module was configured without a blob backend.
	ErrNoLister = errors.New("ingestion: blob lister is not configured")

	// ErrNoSink indicates the module was configured without a sink.
	ErrNoSink = errors.New("ingestion: sink is not configured")

	// ErrNoContainer indicates the module was configured without a container name.
	ErrNoContainer = errors.New("ingestion: container is not configured")
)

// BlobLister is the narrow slice of the blob client the module needs.
type BlobLister interface {
	// ListBlobNames returns the names of every blob in the container.
	ListBlobNames(ctx context.Context, container string) ([]string, error)
}

// Sink receives each newly observed blob exactly once per process.
type Sink interface {
	// HandleBlob processes one blob by name. An error leaves the blob
	// unmarked so the next sweep retries it.
	HandleBlob(ctx context.Context, name string) error
}

// SinkFunc is an adapter to allow ordinary functions to be used as Sinks.
type SinkFunc func(ctx context.Context, name string) error

// HandleBlob processes one blob by name.
func (f SinkFunc) HandleBlob(ctx context.Context, name string) error {
	return f(ctx, name)
}

// Config configures the ingestion module.
type Config struct {
	// Lister is the blob backend. Load fails without one.
	Lister BlobLister

	// Sink receives new blob names. Load fails without one.
	Sink Sink

	// Container is the blob container to watch. Load fails when empty.
	Container string

	// Interval is the polling cadence. Defaults to DefaultInterval.
	Interval time.Duration

	// Logger defaults to a no-op logger.
	Logger observe.Logger
}

// Module returns the registration descriptor for the ingestion task.
func Module(config Config) shell.Module {
	return shell.Module{
		Name: "ingestion",
		Load: func() (shell.AttachFunc, error) {
			switch {
			case config.Lister == nil:
				return nil, ErrNoLister
			case config.Sink == nil:
				return nil, ErrNoSink
			case config.Container == "":
				return nil, ErrNoContainer
			}

			interval := config.Interval
			if interval <= 0 {
				interval = DefaultInterval
			}
			logger := config.Logger
			if logger == nil {
				logger = observe.NopLogger()
			}

			p := &poller{
				lister:    config.Lister,
				sink:      config.Sink,
				container: config.Container,
				interval:  interval,
				logger:    logger.With(observe.Field{Key: "component", Value: "ingestion"}),
				seen:      make(map[string]struct{}),
			}
			return func(b *shell.Binder) error {
				b.AddTask("ingestion-poll", p.run)
				return nil
			}, nil
		},
	}
}

// poller scans the container on a fixed cadence. The seen set lives on the
// single task goroutine, so no lock guards it.
type poller struct {
	lister    BlobLister
	sink      Sink
	container string
	interval  time.Duration
	logger    observe.Logger
	seen      map[string]struct{}
}

func (p *poller) run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Warn(ctx, "ingestion sweep failed",
				observe.Field{Key: "container", Value: p.container},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// sweep lists the container and hands every unseen blob to the sink. A
// failed handoff is retried on the next sweep.
func (p *poller) sweep(ctx context.Context) error {
	names, err := p.lister.ListBlobNames(ctx, p.container)
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, done := p.seen[name]; done {
			continue
		}
		if err := p.sink.HandleBlob(ctx, name); err != nil {
			p.logger.Warn(ctx, "blob handoff failed",
				observe.Field{Key: "blob", Value: name},
				observe.Field{Key: "error", Value: err.Error()},
			)
			continue
		}
		p.seen[name] = struct{}{}
		p.logger.Info(ctx, "blob ingested", observe.Field{Key: "blob", Value: name})
	}
	return nil
}

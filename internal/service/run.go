package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/snipops/snippetd/observe"
	"github.com/snipops/snippetd/shell"
)

// Run serves HTTP and supervises module tasks until ctx is cancelled or the
// listener fails, then drains in-flight requests and flushes telemetry.
func (s *Service) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("service: listen on %s: %w", s.server.Addr, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "server started",
			observe.Field{Key: "addr", Value: listener.Addr().String()})
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("service: serve: %w", err)
		}
		return nil
	})

	for _, task := range s.app.Tasks() {
		g.Go(func() error {
			s.superviseTask(ctx, task)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Std())
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("service: shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	s.logger.Info(context.Background(), "server stopped")

	flushCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if flushErr := s.obs.Shutdown(flushCtx); flushErr != nil && err == nil {
		err = flushErr
	}

	return err
}

// superviseTask runs one module task to completion. A failing or panicking
// task degrades the service but never stops it; cancellation is an orderly
// stop.
func (s *Service) superviseTask(ctx context.Context, task shell.Task) {
	defer func() {
		if v := recover(); v != nil {
			s.logger.Error(ctx, "task panicked",
				observe.Field{Key: "task", Value: task.Name},
				observe.Field{Key: "panic", Value: fmt.Sprint(v)},
			)
		}
	}()

	s.logger.Info(ctx, "task started", observe.Field{Key: "task", Value: task.Name})

	err := task.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Info(ctx, "task stopped", observe.Field{Key: "task", Value: task.Name})
	default:
		s.logger.Error(ctx, "task failed",
			observe.Field{Key: "task", Value: task.Name},
			observe.Field{Key: "error", Value: err.Error()},
		)
	}
}

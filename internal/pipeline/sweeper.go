package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// SweepFunc runs one batch pass and reports how many applications were
// auto-rejected.
type SweepFunc func(ctx context.Context) (int, error)

// Sweeper drives the overdue-confirmation scan: one pass immediately at
// start, then one per interval until the context is canceled. An in-flight
// pass runs to completion after cancellation; no new pass is scheduled.
type Sweeper struct {
	interval time.Duration
	sweep    SweepFunc
	logger   *slog.Logger
}

func NewSweeper(interval time.Duration, sweep SweepFunc, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{interval: interval, sweep: sweep, logger: logger}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("sweeper started", slog.Duration("interval", s.interval))

	s.pass(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopping", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			s.pass(ctx)
		}
	}
}

func (s *Sweeper) pass(ctx context.Context) {
	rejected, err := s.sweep(ctx)
	if err != nil {
		s.logger.Error("sweep pass failed", slog.String("error", err.Error()))
		return
	}
	if rejected > 0 {
		s.logger.Info("sweep pass completed", slog.Int("auto_rejected", rejected))
	}
}

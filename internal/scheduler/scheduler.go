package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Ingester runs a full ingestion pass over every registered taxon.
type Ingester interface {
	IngestAll(ctx context.Context) error
}

type Scheduler struct {
	ingester Ingester
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(ingester Ingester, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ingester: ingester,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runIngest(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runIngest(ctx)
		}
	}
}

func (s *Scheduler) runIngest(ctx context.Context) {
	if err := s.ingester.IngestAll(ctx); err != nil {
		s.logger.Error("ingestion pass failed", "error", err)
	}
}

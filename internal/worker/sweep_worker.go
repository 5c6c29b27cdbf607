package worker

import (
	"context"
	"time"

	"club-booking/internal/data/repository"
	"club-booking/internal/usecase"

	"go.uber.org/zap"
)

// SweepWorker periodically removes expired holds and marks overdue
// bookings as no-show.
type SweepWorker struct {
	holds    repository.HoldRepository
	bookings usecase.BookingService
	interval time.Duration
	log      *zap.Logger
}

func NewSweepWorker(
	holds repository.HoldRepository,
	bookings usecase.BookingService,
	interval time.Duration,
	log *zap.Logger,
) *SweepWorker {
	return &SweepWorker{
		holds:    holds,
		bookings: bookings,
		interval: interval,
		log:      log.With(zap.String("worker", "sweep")),
	}
}

// Run blocks until ctx is cancelled.
func (w *SweepWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Sweep worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Sweep worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass of both cleanups.
func (w *SweepWorker) Sweep(ctx context.Context) {
	now := time.Now()

	expired, err := w.holds.DeleteExpired(ctx, now)
	if err != nil {
		w.log.Error("Failed to delete expired holds", zap.Error(err))
	} else if expired > 0 {
		w.log.Info("Expired holds removed", zap.Int64("count", expired))
	}

	if _, err := w.bookings.MarkNoShowOverdue(ctx, now); err != nil {
		w.log.Error("Failed to mark overdue bookings", zap.Error(err))
	}
}

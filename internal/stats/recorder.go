package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/sirupsen/logrus"
)

const recordLockTTL = time.Minute

// DayLocker grants a lease on key to at most one replica at a time.
type DayLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

// Recorder appends the daily total stock value to the history log that
// feeds the stock evolution series.
type Recorder struct {
	inventory repo.StatsRepository
	history   repo.HistoryRepository
	locker    DayLocker
	now       func() time.Time
	logger    logrus.FieldLogger
}

// NewRecorder returns error if a repository is nil. locker can be nil when a
// single replica records.
func NewRecorder(inventory repo.StatsRepository, history repo.HistoryRepository, locker DayLocker, opts ...Option) (*Recorder, error) {
	if inventory == nil {
		return nil, errors.New("stats repository is required")
	}
	if history == nil {
		return nil, errors.New("history repository is required")
	}
	o := buildOptions(opts)
	return &Recorder{
		inventory: inventory,
		history:   history,
		locker:    locker,
		now:       o.now,
		logger:    o.logger,
	}, nil
}

// RecordOnce stores today's total stock value. It reports false when today
// is already recorded or another replica holds the lock.
func (r *Recorder) RecordOnce(ctx context.Context) (bool, error) {
	now := r.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if r.locker != nil {
		key := "stats:snapshot:" + day.Format(time.DateOnly)
		unlock, ok, err := r.locker.TryLock(ctx, key, recordLockTTL)
		if err != nil {
			return false, fmt.Errorf("obtain snapshot lock: %w", err)
		}
		if !ok {
			r.logger.WithField("day", day.Format(time.DateOnly)).Info("snapshot lock held elsewhere, skipping")
			return false, nil
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				r.logger.WithError(err).Warn("failed to release snapshot lock")
			}
		}()
	}

	var totals repo.InventoryTotals
	err := r.inventory.ReadConsistent(ctx, func(rd repo.StatsReader) error {
		var err error
		totals, err = rd.Totals(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("read inventory totals: %w", err)
	}

	recorded, err := r.history.Record(ctx, models.StockValuePoint{
		Day:        day,
		TotalValue: totals.StockValue.Round(2),
		RecordedAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("record stock value: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"day":         day.Format(time.DateOnly),
		"total_value": totals.StockValue.StringFixed(2),
		"recorded":    recorded,
	}).Info("stock value snapshot")
	return recorded, nil
}

// Run records once immediately and then on every tick until ctx is done.
// Failures are logged and retried on the next tick.
func (r *Recorder) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("snapshot interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.RecordOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.WithError(err).Error("failed to record stock value snapshot")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Package stats computes the dashboard statistics of the inventory.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// TopN bounds the category distribution and the top products series.
	TopN = 5
	// EvolutionMonths is the length of the stock value series.
	EvolutionMonths = 7
)

// Service derives snapshots from the live inventory. It keeps no state
// between calls and never writes to the inventory.
type Service struct {
	inventory repo.StatsRepository
	history   repo.HistoryRepository
	now       func() time.Time
	logger    logrus.FieldLogger
}

// NewService returns error if a repository is nil.
func NewService(inventory repo.StatsRepository, history repo.HistoryRepository, opts ...Option) (*Service, error) {
	if inventory == nil {
		return nil, errors.New("stats repository is required")
	}
	if history == nil {
		return nil, errors.New("history repository is required")
	}
	o := buildOptions(opts)
	return &Service{
		inventory: inventory,
		history:   history,
		now:       o.now,
		logger:    o.logger,
	}, nil
}

// ComputeStats reads every aggregate from one consistent view of the
// inventory. Any failing query fails the whole snapshot.
func (s *Service) ComputeStats(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	err := s.inventory.ReadConsistent(ctx, func(r repo.StatsReader) error {
		totals, err := r.Totals(ctx)
		if err != nil {
			return err
		}
		buckets, err := r.CategoryDistribution(ctx, TopN)
		if err != nil {
			return err
		}
		sellers, err := r.TopSellers(ctx, TopN)
		if err != nil {
			return err
		}

		snap.Metrics = metricsFrom(totals)
		snap.Charts.CategoryDistribution = categoryShares(buckets)
		snap.Charts.TopProducts = topProducts(sellers)
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("read inventory: %w", err)
	}

	evolution, err := s.evolution(ctx, snap.Metrics.TotalStockValue)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read stock history: %w", err)
	}
	snap.Charts.StockEvolution = evolution

	s.logger.WithFields(logrus.Fields{
		"total_products": snap.Metrics.TotalProducts,
		"categories":     len(snap.Charts.CategoryDistribution),
	}).Debug("stats snapshot computed")

	return snap, nil
}

func metricsFrom(t repo.InventoryTotals) Metrics {
	return Metrics{
		TotalProducts:   t.ProductCount,
		TotalStockValue: NewMoney(t.StockValue.Round(2)),
		LowStockCount:   t.LowStockCount,
		OutOfStockCount: t.OutOfStockCount,
	}
}

func categoryShares(buckets []repo.CategoryBucket) []CategoryShare {
	return lo.Map(buckets, func(b repo.CategoryBucket, _ int) CategoryShare {
		return CategoryShare{
			Label: b.Label,
			Count: b.ProductCount,
			Value: NewMoney(b.StockValue),
		}
	})
}

func topProducts(products []models.Product) []TopProduct {
	return lo.Map(products, func(p models.Product, _ int) TopProduct {
		return TopProduct{
			Name:    p.Name,
			Sold:    p.SoldQuantity,
			Revenue: NewMoney(p.Revenue()),
		}
	})
}

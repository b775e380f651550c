package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type InMemoryHistoryRepository struct {
	mu     sync.RWMutex
	points []models.StockValuePoint
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{points: []models.StockValuePoint{}}
}

func (r *InMemoryHistoryRepository) Record(_ context.Context, point models.StockValuePoint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	point.Day = truncateDay(point.Day)
	i, found := slices.BinarySearchFunc(r.points, point.Day, func(p models.StockValuePoint, day time.Time) int {
		return p.Day.Compare(day)
	})
	if found {
		return false, nil
	}
	if point.RecordedAt.IsZero() {
		point.RecordedAt = time.Now().UTC()
	}
	r.points = slices.Insert(r.points, i, point)
	return true, nil
}

func (r *InMemoryHistoryRepository) Since(_ context.Context, from time.Time) ([]models.StockValuePoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = truncateDay(from)
	i, _ := slices.BinarySearchFunc(r.points, from, func(p models.StockValuePoint, day time.Time) int {
		return p.Day.Compare(day)
	})
	return slices.Clone(r.points[i:]), nil
}

func (r *InMemoryHistoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.points = []models.StockValuePoint{}
}

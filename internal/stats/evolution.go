package stats

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// monthStarts returns the first instant of the n months ending with now's month, oldest first.
func monthStarts(now time.Time, n int) []time.Time {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return lo.Times(n, func(i int) time.Time {
		return current.AddDate(0, i-(n-1), 0)
	})
}

// evolution builds the monthly stock value series from the daily history.
// A past month reports its latest recorded day, the current month reports
// the live total, and months without history report zero.
func (s *Service) evolution(ctx context.Context, current Money) ([]EvolutionPoint, error) {
	now := s.now()
	months := monthStarts(now, EvolutionMonths)

	points, err := s.history.Since(ctx, months[0])
	if err != nil {
		return nil, err
	}

	latest := make(map[string]decimal.Decimal, EvolutionMonths)
	for _, p := range points {
		latest[p.Day.UTC().Format(monthLayout)] = p.TotalValue
	}
	latest[now.UTC().Format(monthLayout)] = current.Decimal

	return lo.Map(months, func(m time.Time, _ int) EvolutionPoint {
		key := m.Format(monthLayout)
		return EvolutionPoint{Month: key, Value: NewMoney(lo.ValueOr(latest, key, decimal.Zero))}
	}), nil
}

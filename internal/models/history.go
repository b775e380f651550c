package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockValuePoint is one day of the append-only stock value log.
type StockValuePoint struct {
	Day        time.Time       `json:"day"`
	TotalValue decimal.Decimal `json:"total_value"`
	RecordedAt time.Time       `json:"recorded_at"`
}

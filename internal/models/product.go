package models

import "github.com/shopspring/decimal"

// LowStockThreshold is the quantity below which a product counts as low stock.
const LowStockThreshold = 5

// Product represents a product entity in the inventory system.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	SoldQuantity int             `json:"sold_quantity"`
	CategoryID   *int            `json:"category"`
}

// StockValue is the value of the units on hand, unrounded.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Revenue is the value of every unit sold so far at the current price.
func (p Product) Revenue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.SoldQuantity)))
}

func (p Product) LowStock() bool {
	return p.Quantity < LowStockThreshold
}

func (p Product) OutOfStock() bool {
	return p.Quantity == 0
}

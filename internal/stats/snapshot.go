package stats

// Snapshot is one immutable read of the inventory aggregates, built per request.
type Snapshot struct {
	Metrics Metrics `json:"metrics"`
	Charts  Charts  `json:"charts"`
}

type Metrics struct {
	TotalProducts   int   `json:"total_products"`
	TotalStockValue Money `json:"total_stock_value"`
	LowStockCount   int   `json:"low_stock_count"`
	OutOfStockCount int   `json:"out_of_stock_count"`
}

type Charts struct {
	CategoryDistribution []CategoryShare  `json:"category_distribution"`
	TopProducts          []TopProduct     `json:"top_products"`
	StockEvolution       []EvolutionPoint `json:"stock_evolution"`
}

type CategoryShare struct {
	Label string `json:"category__name"`
	Count int    `json:"count"`
	Value Money  `json:"value"`
}

type TopProduct struct {
	Name    string `json:"name"`
	Sold    int    `json:"sold"`
	Revenue Money  `json:"revenue"`
}

type EvolutionPoint struct {
	Month string `json:"month"`
	Value Money  `json:"value"`
}

package repo

type ProductFilter struct {
	Name       string
	CategoryID *int
	Offset     *int
	Limit      *int
}

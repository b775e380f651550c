package models

// UncategorizedLabel groups products that reference no category.
const UncategorizedLabel = "Uncategorized"

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // CSS class or emoji
}

package handlers

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Price        decimal.Decimal `json:"price" validate:"gte=0,lt=1000000"`
	Quantity     int             `json:"quantity" validate:"gte=0,lte=2147483647"`
	SoldQuantity int             `json:"sold_quantity" validate:"gte=0,lte=2147483647"`
	Category     *int            `json:"category,omitempty"`
}

type ProductResponse struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	Price           string            `json:"price"`
	Quantity        int               `json:"quantity"`
	SoldQuantity    int               `json:"sold_quantity"`
	Category        *int              `json:"category"`
	CategoryDetails *CategoryResponse `json:"category_details"`
	LowStock        bool              `json:"low_stock"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"max=50"`
}

type CategoryResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type RegisterResult struct {
	Refresh string       `json:"refresh"`
	Access  string       `json:"access"`
	User    UserResponse `json:"user"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResult struct {
	Access string `json:"access"`
}

type UserResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest only changes the fields that are present.
type UpdateProfileRequest struct {
	Username        *string `json:"username" validate:"omitempty,min=3,max=150"`
	Email           *string `json:"email" validate:"omitempty,email"`
	FirstName       *string `json:"first_name" validate:"omitempty,max=150"`
	LastName        *string `json:"last_name" validate:"omitempty,max=150"`
	NewPassword     *string `json:"new_password" validate:"omitempty,min=6"`
	CurrentPassword string  `json:"current_password"`
}

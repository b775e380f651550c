package models

import (
	"slices"
	"time"
)

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleReader  = "Reader"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasAnyRole reports whether the user belongs to at least one of the given groups.
func (u User) HasAnyRole(roles ...string) bool {
	return slices.ContainsFunc(u.Roles, func(r string) bool {
		return slices.Contains(roles, r)
	})
}

package auth

import "slices"

// Identity is the authenticated caller resolved from an access token.
type Identity struct {
	UserID   int
	Username string
	Roles    []string
}

func (id Identity) HasAnyRole(roles ...string) bool {
	return slices.ContainsFunc(id.Roles, func(r string) bool {
		return slices.Contains(roles, r)
	})
}

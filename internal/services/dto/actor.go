package dto

import "github.com/mesametamaarkhan/theekkardo/internal/models"

// Actor is the authenticated caller of a lifecycle or bidding
// operation, as established by the access guard.
type Actor struct {
	ID    string
	Email string
	Role  models.UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

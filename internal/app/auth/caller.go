package auth

import (
	"github.com/yigit/alumniconnect/internal/app/models"
)

// Caller is the authenticated identity behind a request, resolved from the
// bearer token and the current user row
type Caller struct {
	ID       int64
	Email    string
	Name     string
	Role     models.RoleType
	Approved bool
	Avatar   *string
}

// NewCaller builds a Caller from a stored user
func NewCaller(u *models.User) Caller {
	return Caller{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Approved: u.IsApproved,
		Avatar:   u.Avatar,
	}
}

// IsAdmin reports whether the caller has the admin role
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// User returns the minimal user view of the caller
func (c Caller) User() *models.User {
	return &models.User{
		ID:         c.ID,
		Email:      c.Email,
		Name:       c.Name,
		Role:       c.Role,
		IsApproved: c.Approved,
		Avatar:     c.Avatar,
	}
}

package dto

import (
	"time"

	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// UserResponse is the public profile of a user
type UserResponse struct {
	ID                  string    `json:"id" example:"12"`
	Name                string    `json:"name" example:"Ada Lovelace"`
	Email               string    `json:"email" example:"ada@example.edu"`
	Role                string    `json:"role" example:"alumni"`
	IsApproved          bool      `json:"isApproved" example:"true"`
	GraduationYear      *int      `json:"graduation_year"`
	CurrentOrganization *string   `json:"current_organization"`
	CurrentRole         *string   `json:"current_role"`
	Department          *string   `json:"department"`
	Batch               *string   `json:"batch"`
	Phone               *string   `json:"phone"`
	Location            *string   `json:"location"`
	Bio                 *string   `json:"bio"`
	LinkedIn            *string   `json:"linkedin"`
	Avatar              *string   `json:"avatar"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NewUserResponse maps a user row to its public profile
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                  helpers.FormatID(u.ID),
		Name:                u.Name,
		Email:               u.Email,
		Role:                string(u.Role),
		IsApproved:          u.IsApproved,
		GraduationYear:      u.GraduationYear,
		CurrentOrganization: u.CurrentOrganization,
		CurrentRole:         u.CurrentTitle,
		Department:          u.Department,
		Batch:               u.Batch,
		Phone:               u.Phone,
		Location:            u.Location,
		Bio:                 u.Bio,
		LinkedIn:            u.LinkedIn,
		Avatar:              u.Avatar,
		CreatedAt:           u.CreatedAt,
	}
}

// NewUserResponses maps a slice of users
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateProfileRequest lists the self-editable profile fields
type UpdateProfileRequest struct {
	Name                *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone               *string `json:"phone"`
	Location            *string `json:"location"`
	Bio                 *string `json:"bio"`
	LinkedIn            *string `json:"linkedin"`
	Avatar              *string `json:"avatar"`
	GraduationYear      *int    `json:"graduation_year" binding:"omitempty,min=1900,max=2200"`
	CurrentOrganization *string `json:"current_organization"`
	CurrentRole         *string `json:"current_role"`
	Department          *string `json:"department"`
	Batch               *string `json:"batch"`
}

// ToModel converts the request into a typed profile update
func (r UpdateProfileRequest) ToModel() models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:                r.Name,
		Phone:               r.Phone,
		Location:            r.Location,
		Bio:                 r.Bio,
		LinkedIn:            r.LinkedIn,
		Avatar:              r.Avatar,
		GraduationYear:      r.GraduationYear,
		CurrentOrganization: r.CurrentOrganization,
		CurrentTitle:        r.CurrentRole,
		Department:          r.Department,
		Batch:               r.Batch,
	}
}

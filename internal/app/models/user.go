package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                  int64     `db:"id"`
	Name                string    `db:"name"`
	Email               string    `db:"email"`
	PasswordHash        string    `db:"password_hash"`
	Role                RoleType  `db:"role"`
	IsApproved          bool      `db:"is_approved"`
	GraduationYear      *int      `db:"graduation_year"`
	CurrentOrganization *string   `db:"current_organization"`
	CurrentTitle        *string   `db:"current_title"`
	Department          *string   `db:"department"`
	Batch               *string   `db:"batch"`
	Phone               *string   `db:"phone"`
	Location            *string   `db:"location"`
	Bio                 *string   `db:"bio"`
	LinkedIn            *string   `db:"linkedin"`
	Avatar              *string   `db:"avatar"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// ProfileUpdate carries the self-editable profile columns. Nil fields are left untouched.
type ProfileUpdate struct {
	Name                *string
	Phone               *string
	Location            *string
	Bio                 *string
	LinkedIn            *string
	Avatar              *string
	GraduationYear      *int
	CurrentOrganization *string
	CurrentTitle        *string
	Department          *string
	Batch               *string
}

// Columns returns the non-nil fields keyed by column name
func (p ProfileUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("name", p.Name)
	set("phone", p.Phone)
	set("location", p.Location)
	set("bio", p.Bio)
	set("linkedin", p.LinkedIn)
	set("avatar", p.Avatar)
	set("current_organization", p.CurrentOrganization)
	set("current_title", p.CurrentTitle)
	set("department", p.Department)
	set("batch", p.Batch)
	if p.GraduationYear != nil {
		cols["graduation_year"] = *p.GraduationYear
	}
	return cols
}

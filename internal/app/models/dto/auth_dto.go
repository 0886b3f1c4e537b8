package dto

// RegisterRequest represents the user registration request
type RegisterRequest struct {
	Name                string  `json:"name" binding:"required,min=2,max=100" example:"Ada Lovelace"`
	Email               string  `json:"email" binding:"required,email" example:"ada@example.edu"`
	Password            string  `json:"password" binding:"required,min=8" example:"Password123"`
	Role                string  `json:"role" binding:"required,oneof=student alumni admin" example:"alumni"`
	GraduationYear      *int    `json:"graduation_year" binding:"omitempty,min=1900,max=2200" example:"2018"`
	CurrentOrganization *string `json:"current_organization" example:"Analytical Engines Ltd"`
	CurrentRole         *string `json:"current_role" example:"Engineer"`
	Department          *string `json:"department" example:"Mathematics"`
	Batch               *string `json:"batch" example:"2014-2018"`
	Phone               *string `json:"phone"`
	Location            *string `json:"location"`
}

// LoginRequest represents the user login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.edu"`
	Password string `json:"password" binding:"required" example:"Password123"`
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Message          string       `json:"message" example:"Registered successfully"`
	ApprovalRequired bool         `json:"approvalRequired" example:"true"`
	User             UserResponse `json:"user"`
	AccessToken      string       `json:"access_token"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	Role        string       `json:"role" example:"student"`
	User        UserResponse `json:"user"`
}

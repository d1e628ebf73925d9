package model

// User is the authenticated dashboard operator.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	SchoolID string `json:"school_id,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register request body.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	SchoolID string `json:"school_id,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Verification is the token verification result.
type Verification struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user,omitempty"`
}

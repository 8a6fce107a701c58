package auth

import "github.com/freshkart/freshkart-backend/internal/users"

// SignupRequest is the payload accepted by POST /api/auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// LoginRequest is the payload accepted by POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the token and user profile returned on signup/login.
type AuthResponse struct {
	AccessToken string         `json:"token"`
	User        *users.UserDTO `json:"user"`
}

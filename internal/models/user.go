package models

import "time"

// LoginRequest carries email/password credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest creates a patient account
type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// GoogleLoginRequest carries a Google Identity credential
type GoogleLoginRequest struct {
	Token string `json:"token" form:"credential" binding:"required"`
}

// AuthUser is the user block of an auth response
type AuthUser struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by login and Google login
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// User is the current account as returned by /users/me
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

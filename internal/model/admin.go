package model

import "time"

// Admin represents a course administrator.
type Admin struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignupRequest is the payload for admin registration.
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required,min=3,max=100"`
	LastName  string `json:"lastName" binding:"required,min=3,max=100"`
	Email     string `json:"email" binding:"required,email,min=3,max=100"`
	Password  string `json:"password" binding:"required,min=3,max=100"`
}

// SigninRequest is the payload for admin authentication.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email,min=3,max=100"`
	Password string `json:"password" binding:"required,min=3,max=100"`
}

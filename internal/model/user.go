package model

import "time"

// User is an account holder (tenant). Every client and company row is owned
// by exactly one user.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User roles.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

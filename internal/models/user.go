package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Name and Email are unique across all users.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"created_at"`
}

// NewUser builds a user with a fresh ID. passwordHash must already be hashed.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

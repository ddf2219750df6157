package models

import (
	"time"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
)

// User is a credential record as kept by the store.
type User struct {
	ID           string
	Name         string
	Surname      string
	Email        string
	Address      string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the externally visible part of a User.
type PublicUser struct {
	ID        string
	Name      string
	Surname   string
	Email     string
	Address   string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Address:   u.Address,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// DTO converts to the wire representation.
func (u *PublicUser) DTO() api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Address:   u.Address,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package model

import "time"

// Roles a user can hold within their household.
const (
	RoleParent = "parent"
	RoleCarer  = "carer"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	HouseholdID  int64     `json:"household_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package model

import "time"

// Child belongs to exactly one household for its whole lifetime.
// DateOfBirth is free-form text, entered however the parent wrote it.
type Child struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

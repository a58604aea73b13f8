package model

import "time"

// ScheduleItem records something planned for a child.
type ScheduleItem struct {
	ID              int64     `json:"id"`
	HouseholdID     int64     `json:"household_id"`
	ChildID         int64     `json:"child_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Notes           *string   `json:"notes"`
	StartTime       time.Time `json:"start_time"`
	CreatedByUserID int64     `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

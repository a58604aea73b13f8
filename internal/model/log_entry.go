package model

import "time"

// LogEntry records something that already happened (a feed, a nap, a note).
// CarerName is free text, not a user reference — informal carers exist.
type LogEntry struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	ChildID     int64     `json:"child_id"`
	CarerName   string    `json:"carer_name"`
	Category    string    `json:"category"`
	Notes       string    `json:"notes"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

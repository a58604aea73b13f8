package model

import "time"

// InviteCode is a single-use token a parent issues to onboard a carer.
// It is valid while unused and, when ExpiresAt is set, before that time.
type InviteCode struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	HouseholdID     int64      `json:"household_id"`
	CreatedByUserID int64      `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	UsedByUserID    *int64     `json:"used_by_user_id"`
	UsedAt          *time.Time `json:"used_at"`
}

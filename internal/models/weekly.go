package models

import "time"

// WeeklyEntry is a user's personal best of the week for one mode. The row
// only ever improves: a new result is stored when it has a higher score, or
// an equal score with a strictly lower time. Absence of a row is the
// explicit "no record yet" state.
type WeeklyEntry struct {
	WeekID          string    `json:"week_id"`
	Mode            string    `json:"mode"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	BestScore       int       `json:"best_score"`
	BestTimeSeconds int       `json:"best_time_seconds"`
	UpdatedAt       time.Time `json:"updated_at"`
}

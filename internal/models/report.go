package models

import "time"

// Report is a user-submitted problem report with a snapshot of the context
// it was filed from. Submission is rate-limited per user by an ephemeral
// cooldown that is not persisted.
type Report struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	Type           string    `json:"type"`
	Text           string    `json:"text"`
	Context        string    `json:"context"`
	AdminDelivered bool      `json:"admin_delivered"`
	CreatedAt      time.Time `json:"created_at"`
}

package model

import "time"

// Submission is one contact-form inquiry persisted in the contacts table.
// A Submission is never updated or deleted once created.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// EscalationStatus is the review state of an escalated question.
// This service only ever writes StatusPending.
type EscalationStatus string

const (
	StatusPending EscalationStatus = "pending"
)

// EscalatedQuestion is the record appended to the unanswered questions store
type EscalatedQuestion struct {
	ID        string           `json:"id,omitempty" firestore:"-"`
	Question  string           `json:"question" firestore:"question"`
	Status    EscalationStatus `json:"status" firestore:"status"`
	CreatedAt time.Time        `json:"created_at" firestore:"created_at"`
}

// NewEscalatedQuestion builds a pending record for the given question
func NewEscalatedQuestion(question string) EscalatedQuestion {
	return EscalatedQuestion{
		Question:  question,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// ParseEscalationStatus validates a status filter value
func ParseEscalationStatus(s string) (EscalationStatus, bool) {
	switch EscalationStatus(s) {
	case StatusPending:
		return StatusPending, true
	}
	return "", false
}

// EscalationListResponse is served by the escalation queue endpoint
type EscalationListResponse struct {
	Status      EscalationStatus    `json:"status"`
	Count       int                 `json:"count"`
	Escalations []EscalatedQuestion `json:"escalations"`
}

package domain

import "time"

// MaxEmailBodyLength bounds EmailMessage.Body.
const MaxEmailBodyLength = 100000

// EmailMessage is a persisted outgoing message between two Persons.
type EmailMessage struct {
	ID         int64
	Dispatcher Person
	Receptor   Person
	Subject    string
	Body       string
	Status     EmailStatus
	Type       EmailType
	Info       *string
	CreatedOn  time.Time
}

// EmailRef is the queue payload. It carries only the row id so the
// consumer always reads the current state from the database.
type EmailRef struct {
	EmailID int64 `json:"email_id"`
}

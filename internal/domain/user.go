package domain

import "time"

// User is an account allowed to manage site content.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedOn    time.Time
}

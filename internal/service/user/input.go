package user

import (
	"strings"

	"github.com/aistomin/andys-backend/internal/validation"
)

// CredentialsInput carries a username and a plain-text password.
type CredentialsInput struct {
	Username string `json:"username" validate:"notblank,min=3,max=100"`
	// bcrypt ignores everything past 72 bytes.
	Password string `json:"password" validate:"required,min=5,max=72"`
}

// Validate checks all fields and collects all errors.
func (i CredentialsInput) Validate() error {
	return validation.Struct(i)
}

func (i CredentialsInput) normalized() CredentialsInput {
	i.Username = strings.TrimSpace(i.Username)
	return i
}

// UpdateInput replaces the credentials of an existing user.
type UpdateInput struct {
	ID int64
	CredentialsInput
}

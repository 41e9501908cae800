package dispatch

import (
	"strings"

	"github.com/aistomin/andys-backend/internal/domain"
)

// SendInput holds the parameters for recording and queueing an email.
type SendInput struct {
	Dispatcher domain.Person
	Receptor   domain.Person
	Subject    string
	Body       string
	Type       domain.EmailType
}

// Validate checks all fields and collects all errors.
func (i SendInput) Validate() error {
	var errs []domain.FieldError

	if i.Dispatcher.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "dispatcher", Message: "must be a stored person"})
	}
	if i.Receptor.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "receptor", Message: "must be a stored person"})
	}
	if strings.TrimSpace(i.Subject) == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	}
	if strings.TrimSpace(i.Body) == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	}
	if len(i.Body) > domain.MaxEmailBodyLength {
		errs = append(errs, domain.FieldError{Field: "body", Message: "max 100000 characters"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown email type"})
	}

	return domain.NewValidationErrors(errs)
}

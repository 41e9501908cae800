package contact

import (
	"strings"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/validation"
)

// Input is one Contact-Us form submission.
type Input struct {
	Email            string `json:"email"   validate:"required,email,max=255"`
	Subject          string `json:"subject" validate:"notblank,max=255"`
	Body             string `json:"body"    validate:"notblank,max=100000"`
	AllowNewsletters bool   `json:"allowNewsletters"`
}

// Validate checks all fields and collects all errors.
func (i Input) Validate() error {
	return validation.Struct(i)
}

func (i Input) normalized() Input {
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	return i
}

// Result reports what a submission produced.
type Result struct {
	// Sent is false when the submission repeated a recent message.
	Sent  bool
	Email *domain.EmailMessage
}

package domain

// EmailStatus is the delivery state of an EmailMessage.
// A message starts CREATED and moves once to SENT or FAILED.
type EmailStatus string

const (
	EmailStatusCreated EmailStatus = "CREATED"
	EmailStatusSent    EmailStatus = "SENT"
	EmailStatusFailed  EmailStatus = "FAILED"
)

func (s EmailStatus) String() string { return string(s) }

func (s EmailStatus) IsValid() bool {
	switch s {
	case EmailStatusCreated, EmailStatusSent, EmailStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s EmailStatus) IsTerminal() bool {
	return s == EmailStatusSent || s == EmailStatusFailed
}

// EmailType classifies why a message was sent.
type EmailType string

const (
	EmailTypeContactRequest EmailType = "CONTACT_REQUEST"
	EmailTypeNewsLetter     EmailType = "NEWS_LETTER"
)

func (t EmailType) String() string { return string(t) }

func (t EmailType) IsValid() bool {
	switch t {
	case EmailTypeContactRequest, EmailTypeNewsLetter:
		return true
	}
	return false
}

package domain

import "time"

// SupportName is used for both name parts of the support mailbox Person.
const SupportName = "Support"

// Person is an email participant identified by a unique address.
// It may be a site visitor who submitted the contact form or the
// support mailbox that receives those requests.
type Person struct {
	ID               int64
	FirstName        *string
	LastName         *string
	Email            string
	AllowNewsletters bool
	CreatedOn        time.Time
}

package models

import "strings"

// Validate checks if the account meets all validation requirements
func (a *Account) Validate() error {
	return validate.Struct(a)
}

// Normalize trims the username and lower-cases the email the same way the
// auth endpoints do, so stored records and lookups agree.
func (a *Account) Normalize() {
	a.Username = strings.TrimSpace(a.Username)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
}

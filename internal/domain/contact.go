package domain

import "net/mail"

// ContactMessage is a website contact-form submission. Unlike leads it has no
// store of record; email delivery is its only sink.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate returns field-level details for every violation, or nil.
func (c ContactMessage) Validate() map[string]any {
	details := map[string]any{}
	if c.Name == "" {
		details["name"] = "Name is required"
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		details["email"] = "Valid email required"
	}
	if c.Message == "" {
		details["message"] = "Message is required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

package dto

import "github.com/nesthome/lead-service/internal/domain"

// ContactRequest payload for the contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ToContact maps the request onto the domain model.
func (r ContactRequest) ToContact() domain.ContactMessage {
	return domain.ContactMessage{Name: r.Name, Email: r.Email, Message: r.Message}
}

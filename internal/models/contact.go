package models

// ContactRequest is a contact form submission from the website.
type ContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Language string `json:"language,omitempty"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

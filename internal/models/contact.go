package models

import (
	"time"
)

// Contact is a customer contact-form submission, optionally tied to a catalog
// service.
type Contact struct {
	ID        int       `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	Message   *string   `json:"message" db:"message"`
	ServiceID *int      `json:"service_id" db:"service_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package domain

import "time"

// Message is a contact-form submission from a visitor.
type Message struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Body      string
	CreatedAt time.Time
}

package domain

import "time"

// BusinessHours describes opening times for one weekday.
// Weekday follows time.Weekday numbering (Sunday = 0).
type BusinessHours struct {
	Weekday  int
	Open     string
	Close    string
	IsClosed bool
}

// ContactInfo is the singleton business profile shown on the contact page.
type ContactInfo struct {
	ID          int64
	Name        string
	Description *string
	Address     string
	Phone1      string
	Phone2      *string
	Email       string
	UpdatedAt   time.Time
}

// SocialLinks is the singleton set of social profiles in the footer.
type SocialLinks struct {
	ID        int64
	Facebook  *string
	Instagram *string
	Twitter   *string
	UpdatedAt time.Time
}

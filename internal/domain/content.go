package domain

import "time"

// Category groups menu items for the public menu page.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItem is a single dish shown on the menu.
type MenuItem struct {
	ID          int64
	Name        string
	Slug        string
	Price       float64
	Description *string
	Image       string
	IsPopular   bool
	IsAvailable bool
	CategoryID  int64
	Category    *Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HeroContent is the singleton hero section of the landing page.
type HeroContent struct {
	ID        int64
	Title     string
	Subtitle  *string
	Image     string
	UpdatedAt time.Time
}

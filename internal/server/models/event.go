package models

import (
	"strings"
	"time"
)

// Categories is the fixed set of event categories, in display order.
var Categories = []string{
	"Community",
	"Networking & Development",
	"Engineering & Business",
	"Innovation & Cybersecurity",
	"Compliance & Emerging Technologies & Corporate",
	"Enterprise IT & Education",
	"Research & Global Tech Trends",
}

// NormalizeCategory trims c and maps it onto a known category, first by exact
// match and then case-insensitively. Unknown input is returned trimmed.
func NormalizeCategory(c string) string {
	trimmed := strings.TrimSpace(c)
	for _, known := range Categories {
		if known == trimmed {
			return known
		}
	}
	for _, known := range Categories {
		if strings.EqualFold(known, trimmed) {
			return known
		}
	}
	return trimmed
}

// IsCategory reports whether c is exactly one of Categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

type Event struct {
	ID           string    `json:"_id"`
	Owner        string    `json:"owner"`
	OwnerRole    Role      `json:"ownerRole"`
	Title        string    `json:"title"`
	Optional     string    `json:"optional"`
	Description  string    `json:"description"`
	OrganizedBy  string    `json:"organizedBy"`
	EventDate    time.Time `json:"eventDate"`
	EventTime    string    `json:"eventTime"`
	Location     string    `json:"location"`
	Participants int       `json:"Participants"`
	Count        int       `json:"Count"`
	Income       float64   `json:"Income"`
	TicketPrice  float64   `json:"ticketPrice"`
	Quantity     int       `json:"Quantity"`
	Image        string    `json:"image"`
	Likes        int       `json:"likes"`
	Comments     []string  `json:"Comment"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

package models

import "time"

// TicketDetails is the printable part of a ticket.
type TicketDetails struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	EventName   string    `json:"eventname"`
	EventDate   time.Time `json:"eventdate"`
	EventTime   string    `json:"eventtime"`
	TicketPrice float64   `json:"ticketprice"`
	QR          string    `json:"qr"`
}

type Ticket struct {
	ID        string        `json:"_id"`
	UserID    string        `json:"userid"`
	EventID   string        `json:"eventid"`
	Details   TicketDetails `json:"ticketDetails"`
	Count     int           `json:"count"`
	CreatedAt time.Time     `json:"createdAt"`
}

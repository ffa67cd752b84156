package models

import "time"

// Ticket is an IT-support request. It shares the Order lifecycle.
type Ticket struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sector      string    `json:"sector"`
	NameOrStore string    `json:"nameOrStore"`
	Status      Status    `json:"status"`
	Response    *string   `json:"response"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t Ticket) RecordID() ID         { return t.ID }
func (t Ticket) RecordStatus() Status { return t.Status }

// NewTicket is the payload of createTicket.
type NewTicket struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
	NameOrStore string `json:"nameOrStore"`
}

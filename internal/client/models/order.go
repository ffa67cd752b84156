package models

import (
	"encoding/json"
	"time"
)

// Order is a material-supply request. Status and Response are changed only
// by a responsible user.
type Order struct {
	ID          ID        `json:"id"`
	Item        string    `json:"item"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note"`
	Sector      string    `json:"sector"`
	NameOrStore string    `json:"nameOrStore"`
	Status      Status    `json:"status"`
	Response    *string   `json:"response"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts "obs" as an older name for the note field.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	aux := struct {
		*plain
		Obs string `json:"obs"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.Note == "" && aux.Obs != "" {
		o.Note = aux.Obs
	}
	return nil
}

func (o Order) RecordID() ID         { return o.ID }
func (o Order) RecordStatus() Status { return o.Status }

// NewOrder is the payload of createOrder.
type NewOrder struct {
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
	Sector      string `json:"sector"`
	NameOrStore string `json:"nameOrStore"`
}

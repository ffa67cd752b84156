package models

import (
	"net/url"
	"strings"
)

// Record is implemented by Order and Ticket.
type Record interface {
	Order | Ticket
	RecordID() ID
	RecordStatus() Status
}

// Filter narrows a list request. Empty fields are not sent.
type Filter struct {
	Status      Status
	Sector      string
	NameOrStore string
	Q           string
}

// Values encodes f as query parameters, skipping blank values.
func (f Filter) Values() url.Values {
	v := url.Values{}
	add := func(k, s string) {
		if strings.TrimSpace(s) != "" {
			v.Set(k, s)
		}
	}
	add("status", string(f.Status))
	add("sector", f.Sector)
	add("nameOrStore", f.NameOrStore)
	add("q", f.Q)
	return v
}

// Patch is a partial update of an order or ticket. Nil fields are left
// untouched by the server.
type Patch struct {
	Status   *Status `json:"status,omitempty"`
	Response *string `json:"response,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.Response == nil
}

// StatusPatch builds a patch changing only the status.
func StatusPatch(s Status) Patch { return Patch{Status: &s} }

// ResponsePatch builds a patch changing only the response text.
func ResponsePatch(r string) Patch { return Patch{Response: &r} }

// CountByStatus tallies records per status.
func CountByStatus[T Record](items []T) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, it := range items {
		counts[it.RecordStatus()]++
	}
	return counts
}

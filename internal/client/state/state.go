// Package state is the Application State Container: a typed store holding
// the identity, the profile and the last fetched orders and tickets.
//
// Every change goes through Dispatch with one of the actions in this
// package. Reduce is a pure function; Store adds locking and synchronous
// listener notification. Persistence is not built in: it is a listener
// (see Persister) registered by the application.
package state

import (
	"slices"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// State is an immutable snapshot. Slices in a snapshot are never modified
// after it is published, so readers may keep them.
type State struct {
	User     *models.Identity
	Settings models.Profile
	Orders   []models.Order
	Tickets  []models.Ticket
}

// Authenticated reports whether an identity is present.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Reduce returns the state after a. Each action replaces exactly one field,
// ADD_* actions prepend to their collection, and unknown actions return s
// unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetUser:
		u := a.User
		s.User = &u
	case ClearUser:
		s.User = nil
	case SetSettings:
		s.Settings = a.Settings
	case SetOrders:
		s.Orders = slices.Clone(a.Orders)
	case AddOrder:
		s.Orders = prepend(s.Orders, a.Order)
	case SetTickets:
		s.Tickets = slices.Clone(a.Tickets)
	case AddTicket:
		s.Tickets = prepend(s.Tickets, a.Ticket)
	}
	return s
}

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

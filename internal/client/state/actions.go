package state

import "github.com/dmitrijs2005/requestdesk/internal/client/models"

// Action kinds accepted by Reduce.
const (
	KindSetUser     = "SET_USER"
	KindClearUser   = "CLEAR_USER"
	KindSetSettings = "SET_SETTINGS"
	KindSetOrders   = "SET_ORDERS"
	KindAddOrder    = "ADD_ORDER"
	KindSetTickets  = "SET_TICKETS"
	KindAddTicket   = "ADD_TICKET"
)

// Action is one state transition. The set of concrete actions below is
// closed; any other implementation is ignored by Reduce.
type Action interface {
	Kind() string
}

type SetUser struct{ User models.Identity }

type ClearUser struct{}

type SetSettings struct{ Settings models.Profile }

type SetOrders struct{ Orders []models.Order }

type AddOrder struct{ Order models.Order }

type SetTickets struct{ Tickets []models.Ticket }

type AddTicket struct{ Ticket models.Ticket }

func (SetUser) Kind() string     { return KindSetUser }
func (ClearUser) Kind() string   { return KindClearUser }
func (SetSettings) Kind() string { return KindSetSettings }
func (SetOrders) Kind() string   { return KindSetOrders }
func (AddOrder) Kind() string    { return KindAddOrder }
func (SetTickets) Kind() string  { return KindSetTickets }
func (AddTicket) Kind() string   { return KindAddTicket }

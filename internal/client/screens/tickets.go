package screens

import (
	"context"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
)

func ticketColumns(t Theme) []column[models.Ticket] {
	return []column[models.Ticket]{
		{"ID", func(k models.Ticket) string { return shortID(k.ID) }},
		{"Title", func(k models.Ticket) string { return k.Title }},
		{"Description", func(k models.Ticket) string { return k.Description }},
		{"Sector", func(k models.Ticket) string { return k.Sector }},
		{"Name/Store", func(k models.Ticket) string { return k.NameOrStore }},
		{"Status", func(k models.Ticket) string { return t.status(k.Status) }},
		{"Response", func(k models.Ticket) string { return responseText(k.Response) }},
	}
}

func ticketListConfig(d Deps, path guard.Path, title string) listConfig[models.Ticket] {
	return listConfig[models.Ticket]{
		path:    path,
		title:   title,
		fetch:   d.Client.GetTickets,
		loaded:  func(items []models.Ticket) { d.Store.Dispatch(state.SetTickets{Tickets: items}) },
		columns: ticketColumns(d.Theme),
	}
}

// NewTicketList is the IT-responsible view of every ticket.
func NewTicketList(d Deps) *List[models.Ticket] {
	d = d.withDefaults()
	cfg := ticketListConfig(d, guard.PathTickets, "All tickets")
	cfg.update = func(ctx context.Context, id models.ID, p models.Patch) error {
		_, err := d.Client.UpdateTicket(ctx, id, p)
		return err
	}
	cfg.origin = func(k models.Ticket) (string, string) { return k.Sector, k.NameOrStore }
	return newList(d, cfg)
}

// NewMyTickets lists the tickets of the logged-in requester's profile.
func NewMyTickets(d Deps) *List[models.Ticket] {
	d = d.withDefaults()
	cfg := ticketListConfig(d, guard.PathTicketsMine, "My tickets")
	cfg.fixed = profileFilter(d)
	return newList(d, cfg)
}

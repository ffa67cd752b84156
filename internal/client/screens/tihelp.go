package screens

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
	"github.com/dmitrijs2005/requestdesk/internal/client/state"
)

// TiHelpForm lets an IT requester open a support ticket.
type TiHelpForm struct {
	*form
	d Deps
}

func NewTiHelpForm(d Deps) *TiHelpForm {
	return &TiHelpForm{
		d: d.withDefaults(),
		form: newForm(
			fieldSpec{name: "title", label: "Title", required: true},
			fieldSpec{name: "description", label: "Description", required: true},
		),
	}
}

func (s *TiHelpForm) Path() guard.Path { return guard.PathTiHelp }
func (s *TiHelpForm) Title() string    { return "IT help" }

func (s *TiHelpForm) Mount(context.Context) { s.setMounted(true) }
func (s *TiHelpForm) Unmount()              { s.setMounted(false) }

// Submit opens the ticket and sends the user to their ticket list.
func (s *TiHelpForm) Submit(ctx context.Context) (guard.Path, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	p := s.d.Store.Snapshot().Settings
	if !p.Complete() {
		err := validationError("complete your profile in Settings first")
		s.fail(err, "")
		return "", err
	}

	t := models.NewTicket{
		Title:       strings.TrimSpace(s.get("title")),
		Description: strings.TrimSpace(s.get("description")),
		Sector:      p.Sector,
		NameOrStore: p.NameOrStore,
	}

	created, err := s.d.Client.CreateTicket(ctx, t)
	if err != nil {
		s.fail(err, "could not open the ticket")
		return "", err
	}
	if created != nil {
		s.d.Store.Dispatch(state.AddTicket{Ticket: *created})
	}

	s.reset()
	s.succeed("Ticket opened: " + t.Title)
	return guard.PathTicketsMine, nil
}

func (s *TiHelpForm) Render(w io.Writer) {
	p := s.d.Store.Snapshot().Settings
	s.render(w, s.d.Theme, s.Title(), fmt.Sprintf("Sector: %s  Name/Store: %s", p.Sector, p.NameOrStore))
}

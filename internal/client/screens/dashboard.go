package screens

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/requestdesk/internal/client/guard"
	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Dashboard is the responsible user's overview: per-status counts over the
// domain's list, followed by the list itself with numbered pages.
type Dashboard struct {
	ListScreen
	d      Deps
	domain models.Domain
}

func NewDashboard(d Deps) *Dashboard {
	d = d.withDefaults()
	domain := models.DomainMaterials
	if u := d.Store.Snapshot().User; u != nil {
		domain = u.Role.Domain()
	}

	var list ListScreen
	if domain == models.DomainIT {
		cfg := NewTicketList(d).cfg
		cfg.path, cfg.title, cfg.paging = guard.PathDashboard, "IT dashboard", numbered
		list = newList(d, cfg)
	} else {
		cfg := NewOrderList(d).cfg
		cfg.path, cfg.title, cfg.paging = guard.PathDashboard, "Materials dashboard", numbered
		list = newList(d, cfg)
	}
	return &Dashboard{ListScreen: list, d: d, domain: domain}
}

func (s *Dashboard) Domain() models.Domain { return s.domain }

func (s *Dashboard) Render(w io.Writer) {
	t := s.d.Theme
	fmt.Fprintln(w, t.title(s.Title()))

	counts := s.Counts()
	total := 0
	cards := make([]string, 0, len(models.Statuses)+1)
	for _, st := range models.Statuses {
		total += counts[st]
		cards = append(cards, kpi(t, t.StatusColor(st), st.Label(), counts[st]))
	}
	cards = append([]string{kpi(t, t.Accent, "Total", total)}, cards...)
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	s.renderBody(w)
}

func kpi(t Theme, c lipgloss.Color, label string, n int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 2).
		MarginRight(1).
		Render(strings.Join([]string{
			lipgloss.NewStyle().Foreground(c).Render(label),
			lipgloss.NewStyle().Bold(true).Render(fmt.Sprint(n)),
		}, "\n"))
}

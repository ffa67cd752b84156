package screens

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// Theme holds the colors used when rendering screens. All colors are ANSI
// 256-color codes.
type Theme struct {
	Accent     lipgloss.Color
	FaintText  lipgloss.Color
	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color
	Border     lipgloss.Color

	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusDone       lipgloss.Color
}

var DefaultTheme = Theme{
	Accent:           lipgloss.Color("39"),
	FaintText:        lipgloss.Color("245"),
	ErrorText:        lipgloss.Color("196"),
	NoticeText:       lipgloss.Color("42"),
	Border:           lipgloss.Color("240"),
	StatusOpen:       lipgloss.Color("214"),
	StatusInProgress: lipgloss.Color("33"),
	StatusDone:       lipgloss.Color("42"),
}

func (t Theme) isZero() bool {
	return t == Theme{}
}

func (t Theme) title(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render(s)
}

func (t Theme) faint(s string) string {
	return lipgloss.NewStyle().Foreground(t.FaintText).Render(s)
}

func (t Theme) errorLine(s string) string {
	return lipgloss.NewStyle().Foreground(t.ErrorText).Render("! " + s)
}

func (t Theme) notice(s string) string {
	return lipgloss.NewStyle().Foreground(t.NoticeText).Render(s)
}

// StatusColor returns the color of a status; unknown statuses are faint.
func (t Theme) StatusColor(s models.Status) lipgloss.Color {
	switch s {
	case models.StatusOpen:
		return t.StatusOpen
	case models.StatusInProgress:
		return t.StatusInProgress
	case models.StatusDone:
		return t.StatusDone
	}
	return t.FaintText
}

func (t Theme) status(s models.Status) string {
	return lipgloss.NewStyle().Foreground(t.StatusColor(s)).Render(s.Label())
}

func (t Theme) table(headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

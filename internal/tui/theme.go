package tui

import (
	"github.com/charmbracelet/lipgloss"

	"ticketboard/internal/models"
)

type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Flash    lipgloss.Style
	Healthy  lipgloss.Style
	Sick     lipgloss.Style
	Pending  lipgloss.Style

	Priority map[models.Priority]lipgloss.Style
}

var DefaultStyles = Styles{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Header:   lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true),
	Label:    lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245")),
	Focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
	Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Flash:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	Healthy:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Sick:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),

	Priority: map[models.Priority]lipgloss.Style{
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		models.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	},
}

func (s Styles) health(h models.HealthState) string {
	switch h {
	case models.HealthHealthy:
		return s.Healthy.Render("● " + string(h))
	case models.HealthUnhealthy:
		return s.Sick.Render("● " + string(h))
	}
	return s.Pending.Render("○ " + string(models.HealthChecking))
}

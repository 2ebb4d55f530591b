package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mobilityos/plansim/internal/domain"
)

// Styles holds the lipgloss styles for the viewer.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Cycle    lipgloss.Style
	Rule     lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style

	LaneFollow   lipgloss.Style
	SidePass     lipgloss.Style
	StopSign     lipgloss.Style
	TrafficLight lipgloss.Style
	Other        lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Cycle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Rule:     lipgloss.NewStyle().Faint(true),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Help:     lipgloss.NewStyle().Faint(true),

		LaneFollow:   badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")),
		SidePass:     badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")),
		StopSign:     badge.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
		TrafficLight: badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		Other:        badge.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240")),
	}
}

// Badge returns the styled scenario badge for a type.
func (s Styles) Badge(typ domain.ScenarioType) string {
	switch {
	case typ == domain.ScenarioLaneFollow:
		return s.LaneFollow.Render(typ.Display())
	case typ == domain.ScenarioSidePass:
		return s.SidePass.Render(typ.Display())
	case typ.IsStopSign():
		return s.StopSign.Render(typ.Display())
	case typ.IsTrafficLight():
		return s.TrafficLight.Render(typ.Display())
	default:
		return s.Other.Render(typ.Display())
	}
}

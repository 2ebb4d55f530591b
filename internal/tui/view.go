package tui

import (
	"fmt"
	"strings"

	"github.com/mobilityos/plansim/internal/domain"
)

// View renders the viewer.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	name := m.out.Recording.Name
	if name == "" {
		name = "recording"
	}
	title := m.styles.Title.Render("plansim")
	state := "paused"
	if m.playing {
		state = "playing"
	}
	sub := m.styles.Subtitle.Render(fmt.Sprintf(" %s — cycle %d/%d (%s)",
		name, m.step+1, len(m.out.Results), state))
	return title + sub
}

func (m Model) renderFooter() string {
	return m.styles.Help.Render(m.help.View(m.keys))
}

// renderCycles renders every cycle up to the current step.
func (m Model) renderCycles() string {
	var b strings.Builder
	for _, r := range m.out.Results[:m.step+1] {
		b.WriteString(m.styles.Cycle.Render(fmt.Sprintf("%4d  s=%8.2f  ", r.Cycle, r.EgoS)))
		b.WriteString(m.styles.Badge(r.Scenario))
		b.WriteString(m.styles.Rule.Render(fmt.Sprintf("  %s", r.Rule)))
		if r.Status == domain.StatusDone {
			b.WriteString("  " + m.styles.Done.Render("done"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

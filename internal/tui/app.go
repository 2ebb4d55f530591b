// Package tui renders replayed scenario selection cycle by cycle.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobilityos/plansim/internal/usecase"
)

const playInterval = 400 * time.Millisecond

// tickMsg advances playback.
type tickMsg time.Time

// Model is the simulation viewer.
type Model struct {
	out    *usecase.SimulateOutput
	keys   KeyMap
	styles Styles
	help   help.Model
	vp     viewport.Model

	step    int // index of the last visible cycle
	playing bool
	ready   bool
	width   int
	height  int
}

// New creates a viewer over a finished simulation.
func New(out *usecase.SimulateOutput) Model {
	return Model{
		out:    out,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		help:   help.New(),
	}
}

// Init starts playback.
func (m Model) Init() tea.Cmd {
	m.playing = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles viewer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.playing = true
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.refresh()
		return m, tick()

	case tickMsg:
		if m.playing && m.step < len(m.out.Results)-1 {
			m.step++
			m.refresh()
		}
		if m.playing {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.playing = false
			if m.step < len(m.out.Results)-1 {
				m.step++
			}
			m.refresh()
		case key.Matches(msg, m.keys.Prev):
			m.playing = false
			if m.step > 0 {
				m.step--
			}
			m.refresh()
		case key.Matches(msg, m.keys.First):
			m.playing = false
			m.step = 0
			m.refresh()
		case key.Matches(msg, m.keys.Last):
			m.playing = false
			m.step = len(m.out.Results) - 1
			m.refresh()
		case key.Matches(msg, m.keys.PlayPause):
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
		}
	}
	return m, nil
}

// refresh rebuilds the viewport content for the current step.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderCycles())
	m.vp.GotoBottom()
}

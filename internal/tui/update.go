package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.help.Width = x.Width
		// Feeds the responsive controller; scale state follows at once, publishing is debounced.
		m.vp.SetColumns(x.Width)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(x)
		}
		return m.handleKey(x)

	case scaleChangedMsg:
		// Styles are read from the theme root on every render.
		return m, m.listenForEvents()

	case selectorMsg:
		cmd := m.applySelectorEvent(x)
		return m, tea.Batch(cmd, m.listenForEvents())

	case configReloadedMsg:
		return m, tea.Batch(m.flash("Config reloaded"), m.listenForEvents())

	case statusExpiredMsg:
		if x.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(x)
		return m, cmd
	}

	return m, nil
}

// flash shows a status message that expires after statusFlashDuration.
func (m *Model) flash(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusFlashDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{Seq: seq}
	})
}

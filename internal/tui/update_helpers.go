package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/regionpick/internal/selector"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Fetch):
		// Started/finished notifications arrive through the events channel.
		m.sel.Fetch()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.sel.Reset()
		return m, nil
	}

	// The picker is disabled while options are loading.
	if m.sel.Loading() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Right):
		m.enterDistricts()
	case key.Matches(msg, m.keys.Left):
		m.column = regionColumn
	case key.Matches(msg, m.keys.Select):
		return m, m.selectUnderCursor()
	case key.Matches(msg, m.keys.Clear):
		return m, m.commitSelection(nil)
	case key.Matches(msg, m.keys.Search):
		m.openSearch()
	}
	return m, nil
}

// handleSearchKey routes keys to the search overlay.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch msg.Type { //nolint:exhaustive // only navigation keys are intercepted
	case tea.KeyEsc:
		m.closeSearch()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyUp:
		if m.matchIndex > 0 {
			m.matchIndex--
		}
		return m, nil
	case tea.KeyDown:
		if m.matchIndex < len(m.matches)-1 {
			m.matchIndex++
		}
		return m, nil
	case tea.KeyEnter:
		if m.matchIndex >= len(m.matches) {
			return m, nil
		}
		path := pathValues(m.matches[m.matchIndex].Path)
		m.closeSearch()
		cmd := m.commitSelection(path)
		m.syncCursorToSelection()
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.matches = filterLeaves(m.leaves, m.search.Value())
	m.matchIndex = 0
	return m, cmd
}

func (m *Model) openSearch() {
	m.searching = true
	m.search.SetValue("")
	m.search.Focus()
	m.leaves = selector.Leaves(m.regions())
	m.matches = filterLeaves(m.leaves, "")
	m.matchIndex = 0
}

func (m *Model) closeSearch() {
	m.searching = false
	m.search.Blur()
	m.matches = nil
	m.leaves = nil
}

// moveCursor moves within the focused column, clamped to its items.
func (m *Model) moveCursor(delta int) {
	n := len(m.regions())
	if m.column == districtColumn {
		n = len(m.districts())
	}
	if n == 0 {
		return
	}
	c := m.cursor[m.column] + delta
	c = max(0, min(c, n-1))
	m.cursor[m.column] = c
	if m.column == regionColumn {
		m.cursor[districtColumn] = 0
	}
}

// enterDistricts moves focus to the district column if the region has children.
func (m *Model) enterDistricts() bool {
	if m.column != regionColumn || len(m.districts()) == 0 {
		return false
	}
	m.column = districtColumn
	return true
}

// selectUnderCursor selects the item under the cursor. Regions with children open them instead.
func (m *Model) selectUnderCursor() tea.Cmd {
	regions := m.regions()
	if m.cursor[regionColumn] >= len(regions) {
		return nil
	}
	region := regions[m.cursor[regionColumn]]
	if m.column == regionColumn {
		if m.enterDistricts() {
			return nil
		}
		return m.commitSelection([]string{region.Value})
	}
	districts := region.Children
	if m.cursor[districtColumn] >= len(districts) {
		return nil
	}
	return m.commitSelection([]string{region.Value, districts[m.cursor[districtColumn]].Value})
}

// commitSelection persists path; the confirmation arrives as a selector event.
func (m *Model) commitSelection(path []string) tea.Cmd {
	if err := m.sel.Select(path); err != nil {
		logrus.WithError(err).Warn("selection not saved")
		return m.flash("Selection not saved")
	}
	return nil
}

// applySelectorEvent updates status and cursors from a selector notification.
func (m *Model) applySelectorEvent(x selectorMsg) tea.Cmd {
	switch {
	case x.Event.Kind.Done():
		m.closeSearch()
		m.syncCursorToSelection()
		return m.flash(x.Event.Kind.String())
	case x.Event.Kind == selector.EventSelected:
		return m.flash(x.Event.Kind.String())
	default:
		// Fetch or reset started: the selection has been cleared.
		m.closeSearch()
		m.syncCursorToSelection()
		m.status = x.Event.Kind.String()
		m.statusSeq++
		return nil
	}
}

package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/regionpick/internal/responsive"
	"github.com/ensigniasec/regionpick/internal/selector"
	"github.com/ensigniasec/regionpick/internal/theme"
)

// Picker columns.
const (
	regionColumn = iota
	districtColumn
	columnCount
)

// Model is the root Bubble Tea model.
type Model struct {
	sel  *selector.Selector
	ctrl *responsive.Controller
	root *theme.Root
	vp   *termViewport

	// inbound notifications from timer callbacks
	events chan tea.Msg

	width    int
	height   int
	quitting bool

	// picker state
	column int
	cursor [columnCount]int

	// search overlay
	searching  bool
	search     textinput.Model
	leaves     [][]selector.Option
	matches    []searchMatch
	matchIndex int

	// ui state
	status      string
	statusSeq   int
	helpVisible bool
	spinner     spinner.Model
	help        help.Model

	// keymap for consistent keybindings
	keys keyMap
}

func newModel(sel *selector.Selector, ctrl *responsive.Controller, root *theme.Root, vp *termViewport, events chan tea.Msg) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "Search regions"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := Model{
		sel:     sel,
		ctrl:    ctrl,
		root:    root,
		vp:      vp,
		events:  events,
		search:  ti,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.syncCursorToSelection()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenForEvents(),
		m.spinner.Tick,
	)
}

// listenForEvents returns a Tea command that waits for the next background notification.
func (m Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// syncCursorToSelection places the cursors on the persisted selection when it exists in the tree.
func (m *Model) syncCursorToSelection() {
	snap := m.sel.Snapshot()
	m.column = regionColumn
	m.cursor = [columnCount]int{}
	if len(snap.Selection) == 0 {
		return
	}
	i := slices.IndexFunc(snap.Options, func(o selector.Option) bool { return o.Value == snap.Selection[0] })
	if i < 0 {
		return
	}
	m.cursor[regionColumn] = i
	if len(snap.Selection) < 2 { //nolint:mnd // region and district
		return
	}
	children := snap.Options[i].Children
	if j := slices.IndexFunc(children, func(o selector.Option) bool { return o.Value == snap.Selection[1] }); j >= 0 {
		m.cursor[districtColumn] = j
	}
}

// regions returns the roots of the current tree.
func (m Model) regions() []selector.Option {
	return m.sel.Snapshot().Options
}

// districts returns the children of the region under the cursor.
func (m Model) districts() []selector.Option {
	regions := m.regions()
	if m.cursor[regionColumn] >= len(regions) {
		return nil
	}
	return regions[m.cursor[regionColumn]].Children
}

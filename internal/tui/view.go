package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ensigniasec/regionpick/internal/selector"
	"github.com/ensigniasec/regionpick/internal/theme"
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	st := m.root.Styles()
	snap := m.sel.Snapshot()

	var b strings.Builder
	b.WriteString(st.Title.Render("Region picker"))
	b.WriteString("\n\n")
	b.WriteString(renderButtons(st, snap.Loading))
	b.WriteString("\n\n")
	b.WriteString(st.Heading.Render("Region: "))
	b.WriteString(renderSelection(st, snap))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.renderSearch(st))
	} else {
		b.WriteString(m.renderColumns(st, snap))
	}

	if snap.Loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(st.Muted.Render(" Processing, please wait..."))
	}

	panel := st.Panel
	if w := m.panelWidth(); w > 0 {
		panel = panel.Width(w - panel.GetHorizontalBorderSize())
	}

	var out strings.Builder
	out.WriteString(panel.Render(b.String()))
	out.WriteString("\n")
	out.WriteString(m.renderStatusBar(st))
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}

// panelWidth is the terminal width capped to panelMaxColumns, or 0 before the first resize.
func (m Model) panelWidth() int {
	if m.width <= 0 {
		return 0
	}
	return min(m.width, panelMaxColumns)
}

func renderButtons(st theme.Styles, loading bool) string {
	fetch, reset := "[f] Fetch options", "[r] Reset options"
	if loading {
		fetch, reset = "[f] Working...", "[r] Working..."
		return theme.Dim().Render(fetch) + strings.Repeat(" ", st.Gap+1) + theme.Dim().Render(reset)
	}
	return st.Selected.Render(fetch) + strings.Repeat(" ", st.Gap+1) + st.Item.Render(reset)
}

func renderSelection(st theme.Styles, snap selector.Snapshot) string {
	labels := selector.Labels(snap.Options, snap.Selection)
	if len(labels) == 0 {
		return st.Muted.Render("Select a region")
	}
	return st.Chosen.Render(strings.Join(labels, " / "))
}

func (m Model) renderColumns(st theme.Styles, snap selector.Snapshot) string {
	regions := snap.Options
	var districts []selector.Option
	if m.cursor[regionColumn] < len(regions) {
		districts = regions[m.cursor[regionColumn]].Children
	}

	chosen := func(col int) string {
		if col < len(snap.Selection) {
			return snap.Selection[col]
		}
		return ""
	}

	cols := []string{
		m.renderColumn(st, regionColumn, regions, chosen(regionColumn), snap.Loading),
	}
	if len(districts) > 0 {
		// The district column only marks the chosen district under the chosen region.
		mark := ""
		if m.cursor[regionColumn] < len(regions) && regions[m.cursor[regionColumn]].Value == chosen(regionColumn) {
			mark = chosen(districtColumn)
		}
		cols = append(cols, m.renderColumn(st, districtColumn, districts, mark, snap.Loading))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(cols, st.Gap)...)
}

func joinWithGap(cols []string, gap int) []string {
	out := make([]string, 0, len(cols)*2) //nolint:mnd // column plus spacer
	for i, c := range cols {
		if i > 0 {
			out = append(out, strings.Repeat(" ", max(gap, 1)))
		}
		out = append(out, c)
	}
	return out
}

func (m Model) renderColumn(st theme.Styles, col int, items []selector.Option, chosen string, disabled bool) string {
	width := columnWidth(items)
	var lines []string
	for i, it := range items {
		prefix := "  "
		if i == m.cursor[col] && col == m.column && !disabled {
			prefix = "> "
		}
		suffix := " "
		if len(it.Children) > 0 {
			suffix = "›"
		}
		if it.Value == chosen {
			suffix = "✓"
		}
		label := runewidth.FillRight(runewidth.Truncate(it.Label, width, "…"), width)
		line := prefix + label + " " + suffix

		style := st.Item
		switch {
		case disabled:
			style = theme.Dim()
		case i == m.cursor[col] && col == m.column:
			style = st.Selected
		case it.Value == chosen:
			style = st.Chosen
		}
		lines = append(lines, style.Render(line))
	}
	if len(lines) == 0 {
		lines = append(lines, st.Muted.Render("(empty)"))
	}

	frame := st.Column
	if col == m.column && !disabled {
		frame = st.ActiveColumn
	}
	return frame.Render(strings.Join(lines, "\n"))
}

// columnWidth fits the widest label, clamped to the column limits.
func columnWidth(items []selector.Option) int {
	w := 0
	for _, it := range items {
		w = max(w, runewidth.StringWidth(it.Label))
	}
	return max(columnMinWidth, min(w, columnMaxWidth))
}

func (m Model) renderSearch(st theme.Styles) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	if len(m.matches) == 0 {
		b.WriteString(st.Muted.Render("  no matching regions"))
		return b.String()
	}
	start := 0
	if m.matchIndex >= searchResultsMax {
		start = m.matchIndex - searchResultsMax + 1
	}
	end := min(len(m.matches), start+searchResultsMax)
	for i := start; i < end; i++ {
		line := "  " + m.matches[i].Display
		style := st.Item
		if i == m.matchIndex {
			line = "> " + m.matches[i].Display
			style = st.Selected
		}
		b.WriteString(style.Render(line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if len(m.matches) > searchResultsMax {
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(fmt.Sprintf("  %d of %d", m.matchIndex+1, len(m.matches))))
	}
	return b.String()
}

func (m Model) renderStatusBar(st theme.Styles) string {
	rs := m.ctrl.State()
	ready := st.Warning.Render("pending")
	if rs.Ready {
		ready = st.Success.Render("ready")
	}
	parts := []string{
		"breakpoint " + rs.Breakpoint,
		"scale " + strconv.FormatFloat(rs.Scale, 'f', -1, 64),
		"width " + strconv.FormatFloat(rs.Width, 'f', -1, 64) + "px",
	}
	if fs := m.root.FontSize(); fs != "" {
		parts = append(parts, "font "+fs)
	}
	line := st.Muted.Render(strings.Join(parts, " • ")) + st.Muted.Render(" • ") + ready
	if m.status != "" {
		line += "  " + st.Heading.Render(m.status)
	}
	return line
}

package theme

import "github.com/charmbracelet/lipgloss"

// Palette colors.
const (
	colorAccent  = lipgloss.Color("69")
	colorMuted   = lipgloss.Color("241")
	colorDim     = lipgloss.Color("240")
	colorOK      = lipgloss.Color("46")
	colorWarn    = lipgloss.Color("208")
	colorBorder  = lipgloss.Color("238")
	colorHeading = lipgloss.Color("252")
)

// roundedFrom is the --border-radius-md value from which panels get rounded corners.
const roundedFrom = 0.375

// Styles are the lipgloss styles the TUI renders with, sized from a Root.
type Styles struct {
	Panel        lipgloss.Style
	Column       lipgloss.Style
	ActiveColumn lipgloss.Style
	Title        lipgloss.Style
	Heading      lipgloss.Style
	Item         lipgloss.Style
	Selected     lipgloss.Style
	Chosen       lipgloss.Style
	Muted        lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	// Gap is the column gap in cells.
	Gap int
}

// Styles derives the current styles. Missing variables fall back to scale 1 values.
func (r *Root) Styles() Styles {
	padX := r.Cells("--spacing-md", 2)
	padY := r.Cells("--spacing-xs", 1) / 2
	colPad := r.Cells("--spacing-xs", 1)
	gap := r.Cells("--spacing-sm", 1)

	border := lipgloss.NormalBorder()
	if r.Rem("--border-radius-md", roundedFrom) >= roundedFrom {
		border = lipgloss.RoundedBorder()
	}

	// Large headings are only bold once the font scale reaches the desktop tiers.
	heading := lipgloss.NewStyle().Foreground(colorHeading)
	if r.Rem("--font-size-lg", 1.125) > 1.125 {
		heading = heading.Bold(true)
	}

	return Styles{
		Panel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(colorAccent).
			Padding(padY, padX),
		Column: lipgloss.NewStyle().
			Border(border).
			BorderForeground(colorBorder).
			Padding(0, colPad),
		ActiveColumn: lipgloss.NewStyle().
			Border(border).
			BorderForeground(colorAccent).
			Padding(0, colPad),
		Title:    lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Heading:  heading,
		Item:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Chosen:   lipgloss.NewStyle().Foreground(colorOK),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Success:  lipgloss.NewStyle().Foreground(colorOK),
		Warning:  lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
		Gap:      gap,
	}
}

// Dim is the style for disabled content.
func Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDim)
}

package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	channelBufferSize = 256
	// defaultCellWidth is the pixel width assumed for one terminal column.
	defaultCellWidth = 8
	// panelMaxColumns caps the picker panel, mirroring a 600px card at the default cell width.
	panelMaxColumns = 76
	// columnMinWidth keeps picker columns readable on narrow terminals.
	columnMinWidth = 8
	// columnMaxWidth stops a single long label from stretching a column.
	columnMaxWidth = 24
	// searchResultsMax is the number of fuzzy matches listed at once.
	searchResultsMax = 8
	// statusFlashSeconds is how long a completion message stays in the status line.
	statusFlashSeconds = 3

	statusFlashDuration = time.Duration(statusFlashSeconds) * time.Second
)

package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ensigniasec/regionpick/internal/selector"
)

// searchMatch is a leaf path that matched the search query.
type searchMatch struct {
	Path    []selector.Option
	Display string
}

func pathDisplay(path []selector.Option) string {
	labels := make([]string, 0, len(path))
	for _, o := range path {
		labels = append(labels, o.Label)
	}
	return strings.Join(labels, " / ")
}

func pathValues(path []selector.Option) []string {
	values := make([]string, 0, len(path))
	for _, o := range path {
		values = append(values, o.Value)
	}
	return values
}

// filterLeaves fuzzy-matches query against labels and values of every leaf path.
// An empty query returns every leaf in tree order.
func filterLeaves(leaves [][]selector.Option, query string) []searchMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]searchMatch, 0, len(leaves))
		for _, p := range leaves {
			out = append(out, searchMatch{Path: p, Display: pathDisplay(p)})
		}
		return out
	}

	// Build searchable strings
	searchStrings := make([]string, len(leaves))
	for i, p := range leaves {
		searchStrings[i] = pathDisplay(p) + " " + strings.Join(pathValues(p), " ")
	}

	matches := fuzzy.Find(query, searchStrings)
	out := make([]searchMatch, 0, len(matches))
	for _, match := range matches {
		p := leaves[match.Index]
		out = append(out, searchMatch{Path: p, Display: pathDisplay(p)})
	}
	return out
}

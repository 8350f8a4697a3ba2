// Package candidate defines the suggestion data model shared by the suggest
// widget, the filter engine, and the loaders. The widget never creates or
// destroys candidates; it only toggles visibility and position labels on
// the set the host supplies.
package candidate

// Candidate is a single selectable suggestion.
type Candidate struct {
	Label    string   // Display text shown in the list
	Value    string   // Text inserted into the input on selection; empty falls back to Label
	Hidden   bool     // Excluded from rendering, navigation, and counts
	PosLabel string   // Accessibility label ("i of n") over visible candidates
	Marks    [][2]int // Highlighted [start, end) byte spans within Label
}

// SelectValue returns the text a selection inserts into the input.
func (c Candidate) SelectValue() string {
	if c.Value != "" {
		return c.Value
	}
	return c.Label
}

// Source supplies candidates to a widget. Implementations are owned by the
// host; List is the trivial in-memory implementation.
type Source interface {
	Candidates() []Candidate
}

// List is a static candidate source.
type List []Candidate

// Candidates implements Source.
func (l List) Candidates() []Candidate {
	return l
}

// FromStrings builds a candidate list where each label doubles as the value.
func FromStrings(labels []string) List {
	out := make(List, len(labels))
	for i, s := range labels {
		out[i] = Candidate{Label: s}
	}
	return out
}

// Visible returns the indices of non-hidden candidates, in order.
func Visible(cands []Candidate) []int {
	idx := make([]int, 0, len(cands))
	for i := range cands {
		if !cands[i].Hidden {
			idx = append(idx, i)
		}
	}
	return idx
}

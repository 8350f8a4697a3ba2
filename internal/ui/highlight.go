package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aliasimkazmi/core-components/internal/candidate"
	"github.com/aliasimkazmi/core-components/internal/config"
)

// markRanges finds all case-insensitive, non-overlapping occurrences of
// query in label and returns their [start, end) byte offsets. An empty
// query yields no ranges.
func markRanges(label, query string) [][2]int {
	if query == "" {
		return nil
	}
	lowLabel := strings.ToLower(label)
	lowQuery := strings.ToLower(query)
	if len(lowQuery) > len(lowLabel) {
		return nil
	}

	var out [][2]int
	for from := 0; ; {
		i := strings.Index(lowLabel[from:], lowQuery)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(lowQuery)
		out = append(out, [2]int{start, end})
		from = end
	}
	return out
}

// applyHighlight updates the Marks on visible candidates per the mode:
// "on" recomputes from query discarding prior marks, "keep" leaves existing
// marks in place, "off" removes them. Hidden candidates always lose their
// marks.
func applyHighlight(cands []candidate.Candidate, query string, mode config.HighlightMode) {
	for i := range cands {
		if cands[i].Hidden {
			cands[i].Marks = nil
			continue
		}
		switch mode {
		case config.HighlightOn:
			cands[i].Marks = markRanges(cands[i].Label, query)
		case config.HighlightKeep:
			// Preserve marks as-is across refresh passes.
		default:
			cands[i].Marks = nil
		}
	}
}

// renderMarked renders label with its marked spans wrapped in the highlight
// style. NoColor mode brackets the spans instead.
func renderMarked(label string, marks [][2]int, noColor bool) string {
	if len(marks) == 0 {
		return label
	}

	th := CurrentTheme()
	hl := lipgloss.NewStyle().Foreground(th.HighlightFG).Background(th.HighlightBG)

	var b strings.Builder
	prev := 0
	for _, m := range marks {
		if m[0] < prev || m[1] > len(label) {
			continue
		}
		b.WriteString(label[prev:m[0]])
		span := label[m[0]:m[1]]
		if noColor {
			b.WriteString("[" + span + "]")
		} else {
			b.WriteString(hl.Render(span))
		}
		prev = m[1]
	}
	b.WriteString(label[prev:])
	return b.String()
}

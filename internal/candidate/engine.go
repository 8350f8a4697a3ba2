package candidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Engine runs the filter, limit, and relabel passes over a candidate set.
// The passes are idempotent: running them twice with the same inputs leaves
// the set unchanged.
type Engine struct {
	// RankMatches orders matching candidates by edit distance to the query
	// (closest first). When false, source order is preserved.
	RankMatches bool
}

// Filter marks candidates whose label does not contain query (case-insensitive)
// as hidden. An empty query reveals everything. When RankMatches is set, the
// matching candidates are reordered by Levenshtein distance to the query;
// ties keep their source order.
func (e Engine) Filter(cands []Candidate, query string) {
	q := strings.ToLower(query)
	for i := range cands {
		cands[i].Hidden = q != "" && !strings.Contains(strings.ToLower(cands[i].Label), q)
	}
	if !e.RankMatches || q == "" {
		return
	}

	vis := Visible(cands)
	matched := make([]Candidate, len(vis))
	for i, idx := range vis {
		matched[i] = cands[idx]
	}
	sort.SliceStable(matched, func(i, j int) bool {
		di := levenshtein.ComputeDistance(q, strings.ToLower(matched[i].Label))
		dj := levenshtein.ComputeDistance(q, strings.ToLower(matched[j].Label))
		return di < dj
	})
	for i, idx := range vis {
		cands[idx] = matched[i]
	}
}

// ApplyLimit hides visible candidates beyond limit. A limit of zero or less
// means unlimited. After the pass exactly min(visible, limit) candidates
// remain visible.
func (e Engine) ApplyLimit(cands []Candidate, limit int) {
	if limit <= 0 {
		return
	}
	seen := 0
	for i := range cands {
		if cands[i].Hidden {
			continue
		}
		seen++
		if seen > limit {
			cands[i].Hidden = true
		}
	}
}

// Relabel assigns "i of n" position labels to visible candidates and clears
// the label on hidden ones.
func (e Engine) Relabel(cands []Candidate) {
	vis := Visible(cands)
	n := len(vis)
	for i := range cands {
		cands[i].PosLabel = ""
	}
	for pos, idx := range vis {
		cands[idx].PosLabel = fmt.Sprintf("%d of %d", pos+1, n)
	}
}

// Refresh runs the full pass: filter by query, apply the visibility limit,
// then relabel. This is the reconciliation step the widget runs after every
// keystroke or host-driven candidate change.
func (e Engine) Refresh(cands []Candidate, query string, limit int) {
	e.Filter(cands, query)
	e.ApplyLimit(cands, limit)
	e.Relabel(cands)
}

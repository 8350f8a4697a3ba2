package widgets

import (
	"strings"

	"github.com/aliasimkazmi/core-components/internal/candidate"
	"github.com/aliasimkazmi/core-components/internal/config"
)

// Candidate is a single selectable entry. Value is what selection yields;
// when empty, the Label is used instead.
type Candidate struct {
	Label string
	Value string
}

// SelectValue returns the value selection yields for this candidate.
func (c Candidate) SelectValue() string {
	if c.Value != "" {
		return c.Value
	}
	return c.Label
}

// Config holds host-provided settings for running the picker.
type Config struct {
	Candidates []Candidate

	// Limit caps the number of visible candidates; <= 0 means unlimited.
	Limit int
	// Highlight controls match highlighting: "off", "on", or "keep".
	Highlight string
	// AjaxURL, when set, switches the widget to remote mode. It must
	// contain the {{value}} placeholder for the query.
	AjaxURL string
	// DebounceMs is the remote fetch debounce in milliseconds.
	DebounceMs int
	// ExtractExpr is a CEL expression mapping the fetched payload to
	// candidates; the payload is bound to "_".
	ExtractExpr string
	// RankMatches orders visible candidates by edit distance to the query.
	RankMatches bool

	Width   int
	Height  int
	NoColor bool
	// ThemeName selects a built-in theme (dark, light).
	ThemeName string

	// ConfirmSelect routes selections through a confirm dialog.
	ConfirmSelect bool
	Placeholder   string

	// OnFilter fires on every keystroke; returning false suppresses
	// filtering and fetching for that input.
	OnFilter func(query string) bool
	// OnSelect fires before a selection is accepted; returning false
	// cancels it.
	OnSelect func(c Candidate) bool
	// BeforeSend fires before each remote request; returning false
	// suppresses the request.
	BeforeSend func(url string) bool
}

// Result is the outcome of a picker run.
type Result struct {
	Canceled  bool
	Candidate Candidate
}

func (c Config) options() config.Options {
	opts := config.Defaults()
	opts.Limit = c.Limit
	if strings.TrimSpace(c.Highlight) != "" {
		opts.Highlight = config.HighlightMode(c.Highlight)
	}
	opts.AjaxURL = c.AjaxURL
	if c.DebounceMs > 0 {
		opts.DebounceMs = c.DebounceMs
	}
	if strings.TrimSpace(c.ExtractExpr) != "" {
		opts.ExtractExpr = c.ExtractExpr
	}
	opts.RankMatches = c.RankMatches
	return opts
}

func (c Config) source() candidate.Source {
	cands := make(candidate.List, 0, len(c.Candidates))
	for _, pc := range c.Candidates {
		cands = append(cands, candidate.Candidate{Label: pc.Label, Value: pc.Value})
	}
	return cands
}

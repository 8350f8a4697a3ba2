// Package config holds the option set shared by the suggest widget and the
// pick CLI. Options mirror what a host page would set as attributes: all of
// them are plain values the host can read back at any time.
package config

import (
	"fmt"
	"strings"
)

// HighlightMode controls how match highlighting behaves across refresh passes.
type HighlightMode string

const (
	// HighlightOff disables highlighting and clears existing markers.
	HighlightOff HighlightMode = "off"
	// HighlightOn recomputes markers from the current input on every refresh.
	HighlightOn HighlightMode = "on"
	// HighlightKeep preserves previously computed markers in place.
	HighlightKeep HighlightMode = "keep"
)

// ValidHighlightModes lists the accepted highlight modes for validation.
var ValidHighlightModes = []HighlightMode{HighlightOff, HighlightOn, HighlightKeep}

// ValuePlaceholder is the token in an endpoint template replaced by the
// URL-encoded input text.
const ValuePlaceholder = "{{value}}"

// DefaultDebounceMs is the quiet period before a remote fetch fires.
const DefaultDebounceMs = 300

// Options configures a suggest widget instance.
type Options struct {
	Limit       int           `yaml:"limit"`        // Max visible candidates; 0 = unlimited
	Highlight   HighlightMode `yaml:"highlight"`    // off|on|keep
	AjaxURL     string        `yaml:"ajax"`         // Endpoint template with {{value}}; empty = local filtering
	DebounceMs  int           `yaml:"debounce_ms"`  // Quiet period for remote fetches
	ExtractExpr string        `yaml:"extract"`      // CEL expression mapping a payload to candidates
	RankMatches bool          `yaml:"rank_matches"` // Order local matches by edit distance
}

// Defaults returns the option set used when nothing is configured.
func Defaults() Options {
	return Options{
		Highlight:  HighlightOff,
		DebounceMs: DefaultDebounceMs,
	}
}

// Remote reports whether a remote endpoint is configured.
func (o Options) Remote() bool {
	return o.AjaxURL != ""
}

// Validate checks option consistency.
// Rules:
// - Limit and DebounceMs must be non-negative
// - Highlight must be one of off|on|keep (empty defaults to off)
// - AjaxURL, when set, must contain the {{value}} placeholder
func (o Options) Validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", o.Limit)
	}
	if o.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must be non-negative, got %d", o.DebounceMs)
	}
	if o.Highlight != "" && !isValidHighlight(o.Highlight) {
		return fmt.Errorf("highlight must be one of off|on|keep, got %q", o.Highlight)
	}
	if o.AjaxURL != "" && !strings.Contains(o.AjaxURL, ValuePlaceholder) {
		return fmt.Errorf("ajax template %q is missing the %s placeholder", o.AjaxURL, ValuePlaceholder)
	}
	return nil
}

func isValidHighlight(m HighlightMode) bool {
	for _, v := range ValidHighlightModes {
		if v == m {
			return true
		}
	}
	return false
}

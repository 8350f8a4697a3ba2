package widgets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliasimkazmi/core-components/internal/config"
)

func TestConfigOptionsMapping(t *testing.T) {
	cfg := Config{
		Limit:       5,
		Highlight:   "keep",
		AjaxURL:     "https://api.example.com/q?s={{value}}",
		DebounceMs:  150,
		ExtractExpr: "_.items",
		RankMatches: true,
	}

	opts := cfg.options()

	assert.Equal(t, 5, opts.Limit)
	assert.Equal(t, config.HighlightKeep, opts.Highlight)
	assert.Equal(t, cfg.AjaxURL, opts.AjaxURL)
	assert.Equal(t, 150, opts.DebounceMs)
	assert.Equal(t, "_.items", opts.ExtractExpr)
	assert.True(t, opts.RankMatches)
}

func TestConfigOptionsDefaults(t *testing.T) {
	opts := Config{}.options()

	assert.Equal(t, config.HighlightOff, opts.Highlight)
	assert.Equal(t, config.DefaultDebounceMs, opts.DebounceMs)
	assert.Equal(t, 0, opts.Limit)
	assert.False(t, opts.Remote())
}

func TestConfigSourceConversion(t *testing.T) {
	cfg := Config{Candidates: []Candidate{
		{Label: "Go"},
		{Label: "Rust", Value: "rs"},
	}}

	cands := cfg.source().Candidates()

	require.Len(t, cands, 2)
	assert.Equal(t, "Go", cands[0].SelectValue())
	assert.Equal(t, "rs", cands[1].SelectValue())
}

func TestCandidateSelectValueFallsBackToLabel(t *testing.T) {
	assert.Equal(t, "apple", Candidate{Label: "apple"}.SelectValue())
	assert.Equal(t, "a", Candidate{Label: "apple", Value: "a"}.SelectValue())
}

func TestNewPickerWiresHooksAndOptions(t *testing.T) {
	var filtered []string
	cfg := Config{
		Candidates:    []Candidate{{Label: "apple"}},
		NoColor:       true,
		Width:         80,
		Height:        24,
		ConfirmSelect: true,
		Placeholder:   "pick a fruit",
		OnFilter: func(q string) bool {
			filtered = append(filtered, q)
			return true
		},
		OnSelect: func(Candidate) bool { return false },
	}

	p, err := newPicker(cfg)
	require.NoError(t, err)

	assert.True(t, p.ConfirmSelect)
	assert.True(t, p.Suggest.NoColor)
	assert.Equal(t, "pick a fruit", p.Suggest.Input.Placeholder)
	require.NotNil(t, p.Suggest.Hooks.FilterStarted)
	require.NotNil(t, p.Suggest.Hooks.Select)

	p.Suggest.Hooks.FilterStarted("ap")
	assert.Equal(t, []string{"ap"}, filtered)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	res, err := Run(Config{AjaxURL: "https://api.example.com/q"}) // missing {{value}}
	require.Error(t, err)
	assert.True(t, res.Canceled)
}

func TestRunRejectsBadExtractExpression(t *testing.T) {
	res, err := Run(Config{
		AjaxURL:     "https://api.example.com/q={{value}}",
		ExtractExpr: "_.map(",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile extraction expression")
	assert.True(t, res.Canceled)
}

func TestValidHighlightModes(t *testing.T) {
	assert.ElementsMatch(t, []string{"off", "on", "keep"}, ValidHighlightModes())
}

func TestWithIO(t *testing.T) {
	var out bytes.Buffer
	assert.Len(t, WithIO(bytes.NewBufferString(""), &out), 2)
	assert.Empty(t, WithIO(nil, nil))
	assert.Len(t, WithIO(nil, &out), 1)
}

func TestDetectTerminalSizeReturnsPositiveWidth(t *testing.T) {
	w, _ := DetectTerminalSize()
	assert.Greater(t, w, 0)
}

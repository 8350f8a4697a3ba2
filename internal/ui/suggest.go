package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/aliasimkazmi/core-components/internal/candidate"
	"github.com/aliasimkazmi/core-components/internal/config"
	"github.com/aliasimkazmi/core-components/internal/extract"
	"github.com/aliasimkazmi/core-components/internal/fetch"
)

// SelectedMsg is emitted when a candidate is selected (or the raw input is
// accepted with Enter while no candidate is focused).
type SelectedMsg struct {
	Candidate candidate.Candidate
}

// Hooks are the cancelable notification points of the widget. A hook
// returning false suppresses the default action; hooks run unguarded, so a
// panicking hook propagates to the host.
type Hooks struct {
	// FilterStarted fires on every keystroke before filtering or fetching.
	FilterStarted func(query string) bool
	// Select fires before a candidate's value is written to the input.
	Select func(c candidate.Candidate) bool
	// BeforeSend fires before each remote request goes out.
	BeforeSend fetch.BeforeSendHook
}

// SuggestModel pairs a text input with a candidate list: it filters or
// remotely fetches candidates as the user types, drives keyboard navigation
// over the visible candidates, and announces result counts on a status line.
//
// All candidate mutation happens in the refresh pass, so the host can
// replace the candidate set at any time (SetCandidates) and the widget
// reconciles on the next update.
type SuggestModel struct {
	Input textinput.Model
	Opts  config.Options
	Keys  map[string]NavAction
	Hooks Hooks
	Log   logr.Logger

	NoColor bool

	cands      candidate.List
	engine     candidate.Engine
	fetcher    *fetch.Fetcher
	extractor  *extract.Extractor
	extractErr error
	announcer  Announcer
	spin       spinner.Model

	selected int // Index into the visible order; -1 = focus on the input
	open     bool
	focused  bool
	fetching bool
	width    int
	height   int
}

// NewSuggestModel creates a suggest widget over the given source.
// Invalid options are normalized to defaults; callers wanting strict
// validation run Options.Validate first.
func NewSuggestModel(src candidate.Source, opts config.Options) *SuggestModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter…"
	ti.CharLimit = 256
	ti.SetWidth(60)
	ti.Prompt = "❯ "

	if opts.Highlight == "" {
		opts.Highlight = config.HighlightOff
	}
	if opts.DebounceMs <= 0 {
		opts.DebounceMs = config.DefaultDebounceMs
	}

	m := &SuggestModel{
		Input:    ti,
		Opts:     opts,
		Keys:     NavKeyBindings,
		Log:      logr.Discard(),
		engine:   candidate.Engine{RankMatches: opts.RankMatches},
		selected: -1,
		width:    60,
		height:   16,
	}
	if src != nil {
		m.cands = append(candidate.List{}, src.Candidates()...)
	}
	if opts.Remote() {
		m.fetcher = fetch.New(opts.AjaxURL, time.Duration(opts.DebounceMs)*time.Millisecond)
	}
	if ex, err := extract.New(opts.ExtractExpr); err != nil {
		m.extractErr = err
	} else {
		m.extractor = ex
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.spin = sp

	m.refresh()
	return m
}

// Init initializes the widget.
func (m *SuggestModel) Init() tea.Cmd {
	return textinput.Blink
}

// Focus reveals the list and focuses the input.
func (m *SuggestModel) Focus() tea.Cmd {
	m.focused = true
	m.open = true
	return m.Input.Focus()
}

// Blur hides the list, the analog of clicking outside the widget.
func (m *SuggestModel) Blur() {
	m.focused = false
	m.open = false
	m.selected = -1
	m.announcer.Reset()
	m.Input.Blur()
}

// Close releases the widget: pending debounces are invalidated and any
// in-flight request is aborted.
func (m *SuggestModel) Close() {
	if m.fetcher != nil {
		m.fetcher.Close()
	}
}

// Open reports whether the candidate list is visible.
func (m *SuggestModel) Open() bool { return m.open }

// Selected returns the index of the focused candidate in the visible order,
// or -1 when focus is on the input.
func (m *SuggestModel) Selected() int { return m.selected }

// Candidates exposes the current candidate set, including hidden entries.
func (m *SuggestModel) Candidates() candidate.List { return m.cands }

// Announcement returns the current status-line text.
func (m *SuggestModel) Announcement() string { return m.announcer.Text }

// SetCandidates replaces the candidate set, the analog of the host page
// re-rendering the list, and reconciles visibility and labels.
func (m *SuggestModel) SetCandidates(cands candidate.List) {
	m.cands = cands
	m.refresh()
}

// SetSize sets the available width and height for the widget.
func (m *SuggestModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.Input.SetWidth(width - 4)
}

// Fetcher exposes the remote fetcher, nil when no endpoint is configured.
func (m *SuggestModel) Fetcher() *fetch.Fetcher { return m.fetcher }

// ExtractErr returns the compile error of the extraction expression, if any.
// Hosts that want to fail before the first fetch check it after construction.
func (m *SuggestModel) ExtractErr() error { return m.extractErr }

// Update handles messages.
func (m *SuggestModel) Update(msg tea.Msg) (*SuggestModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case fetch.DebounceMsg:
		if m.fetcher == nil || m.fetcher.Stale(msg) {
			return m, nil
		}
		m.fetcher.SetBeforeSend(m.Hooks.BeforeSend)
		m.fetching = true
		return m, tea.Batch(m.fetcher.Fetch(msg.Query), m.spin.Tick)

	case fetch.DataMsg:
		m.fetching = false
		return m, m.handleData(msg)

	case fetch.ErrorMsg:
		m.fetching = false
		m.Log.Error(msg.Err, "suggest fetch failed", "query", msg.Query)
		return m, m.announcer.Announce(msg.Err.Error(), true)

	case AnnounceClearMsg:
		m.announcer.Handle(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *SuggestModel) handleKey(msg tea.KeyMsg) (*SuggestModel, tea.Cmd) {
	if action, ok := m.Keys[msg.String()]; ok && action != NavNone {
		if handled, cmd := m.navigate(action); handled {
			return m, cmd
		}
	}

	// Any other key returns focus to the input and types into it.
	m.selected = -1
	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != before {
		m.open = true
		return m, tea.Batch(cmd, m.handleInput(m.Input.Value()))
	}
	return m, cmd
}

// navigate applies a list navigation action. It reports false when the
// action does not apply (so the key falls through to the input).
func (m *SuggestModel) navigate(action NavAction) (bool, tea.Cmd) {
	vis := candidate.Visible(m.cands)

	switch action {
	case NavHide:
		if !m.open {
			return false, nil
		}
		m.open = false
		m.selected = -1
		m.announcer.Reset()
		return true, nil

	case NavSelect:
		return true, m.selectCurrent(vis)

	case NavNext, NavPrev, NavFirst, NavLast:
		if !m.open || len(vis) == 0 {
			return false, nil
		}
		if listOnly(action) && m.selected < 0 {
			return false, nil
		}
		switch action {
		case NavNext:
			if m.selected >= len(vis)-1 {
				m.selected = -1 // wrap back to the input
			} else {
				m.selected++
			}
		case NavPrev:
			if m.selected < 0 {
				m.selected = len(vis) - 1 // wrap from the input to the last item
			} else {
				m.selected--
			}
		case NavFirst:
			m.selected = 0
		case NavLast:
			m.selected = len(vis) - 1
		}
		return true, nil
	}
	return false, nil
}

// selectCurrent fires the select hook and, unless suppressed, writes the
// candidate's value into the input and hides the list. Enter while focus is
// on the input accepts the typed text as a synthetic candidate.
func (m *SuggestModel) selectCurrent(vis []int) tea.Cmd {
	var c candidate.Candidate
	if m.selected >= 0 && m.selected < len(vis) {
		c = m.cands[vis[m.selected]]
	} else {
		c = candidate.Candidate{Label: m.Input.Value(), Value: m.Input.Value()}
	}

	if m.Hooks.Select != nil && !m.Hooks.Select(c) {
		return nil
	}

	m.Input.SetValue(c.SelectValue())
	m.Input.SetCursor(len(c.SelectValue()))
	m.open = false
	m.selected = -1
	m.announcer.Reset()
	return func() tea.Msg { return SelectedMsg{Candidate: c} }
}

// handleInput runs the keystroke pipeline: the cancelable filter-started
// hook, then either the debounced remote fetch or the local filter pass.
func (m *SuggestModel) handleInput(query string) tea.Cmd {
	if m.Hooks.FilterStarted != nil && !m.Hooks.FilterStarted(query) {
		return nil
	}
	if m.Opts.Remote() {
		// Remote mode skips local filtering; the response replaces the set.
		return m.fetcher.Trigger(query)
	}
	return m.refresh()
}

// handleData converts a fetch payload into candidates and installs them.
func (m *SuggestModel) handleData(msg fetch.DataMsg) tea.Cmd {
	if m.extractor == nil {
		if m.extractErr != nil {
			m.Log.Error(m.extractErr, "extraction expression rejected", "query", msg.Query)
			return m.announcer.Announce(m.extractErr.Error(), true)
		}
		return m.announcer.Announce("no extractor configured", true)
	}
	cands, err := m.extractor.Candidates(msg.Payload)
	if err != nil {
		m.Log.Error(err, "payload extraction failed", "query", msg.Query)
		return m.announcer.Announce(err.Error(), true)
	}
	m.cands = cands
	return m.refreshRemote()
}

// refresh reconciles visibility, position labels, and highlights after a
// local keystroke or candidate change.
func (m *SuggestModel) refresh() tea.Cmd {
	query := m.Input.Value()
	filterQuery := query
	if m.Opts.Remote() {
		// The server already filtered; only the limit applies locally.
		filterQuery = ""
	}
	m.engine.Refresh(m.cands, filterQuery, m.Opts.Limit)
	applyHighlight(m.cands, query, m.Opts.Highlight)
	m.clampSelection()
	return m.announceCount()
}

func (m *SuggestModel) refreshRemote() tea.Cmd {
	m.engine.Refresh(m.cands, "", m.Opts.Limit)
	applyHighlight(m.cands, m.Input.Value(), m.Opts.Highlight)
	m.clampSelection()
	return m.announceCount()
}

func (m *SuggestModel) clampSelection() {
	n := len(candidate.Visible(m.cands))
	if m.selected >= n {
		m.selected = n - 1
	}
}

func (m *SuggestModel) announceCount() tea.Cmd {
	if !m.open {
		return nil
	}
	n := len(candidate.Visible(m.cands))
	text := fmt.Sprintf("%d results", n)
	if n == 1 {
		text = "1 result"
	}
	return m.announcer.Announce(text, false)
}

// View renders the input, the visible candidates windowed around the
// selection, and the announcer line.
func (m *SuggestModel) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())
	b.WriteString("\n")

	if m.open {
		m.renderList(&b)
	}

	if m.fetching {
		b.WriteString(m.spin.View())
		b.WriteString(" fetching…\n")
	}

	if m.announcer.Text != "" {
		line := m.announcer.Text
		if !m.NoColor {
			th := CurrentTheme()
			color := th.MutedColor
			if m.announcer.IsError {
				color = th.ErrorColor
			}
			line = lipgloss.NewStyle().Foreground(color).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m *SuggestModel) renderList(b *strings.Builder) {
	vis := candidate.Visible(m.cands)
	if len(vis) == 0 {
		return
	}

	maxRows := m.height - 3 // input, spinner/announcer, padding
	if maxRows < 3 {
		maxRows = 3
	}

	// Window the list around the selection.
	start := 0
	if m.selected >= maxRows {
		start = m.selected - maxRows + 1
	}
	end := start + maxRows
	if end > len(vis) {
		end = len(vis)
		if start = end - maxRows; start < 0 {
			start = 0
		}
	}

	th := CurrentTheme()
	selStyle := lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.SelectedBG).Bold(true)
	posStyle := lipgloss.NewStyle().Foreground(th.MutedColor)

	for i := start; i < end; i++ {
		c := m.cands[vis[i]]
		prefix := "  "
		if i == m.selected {
			prefix = "▸ "
		}

		label := renderMarked(c.Label, c.Marks, m.NoColor)
		line := prefix + label
		if c.PosLabel != "" {
			pos := " (" + c.PosLabel + ")"
			if !m.NoColor {
				pos = posStyle.Render(pos)
			}
			line += pos
		}

		// Truncate to fit in no-color mode; styled lines keep their width.
		if m.NoColor && runewidth.StringWidth(line) > m.width {
			line = runewidth.Truncate(line, m.width, "…")
		}
		if !m.NoColor && i == m.selected {
			line = selStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
}

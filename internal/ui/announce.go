package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultAnnounceClear is how long an announcement stays on screen.
const DefaultAnnounceClear = 1500 * time.Millisecond

// AnnounceClearMsg clears an announcement after its display period. The ID
// is compared against the announcer's current ID so a newer announcement is
// not wiped by an older timer.
type AnnounceClearMsg struct {
	ID int
}

// Announcer is the status line counterpart of an accessibility live region:
// it shows a short "N results" or error message below the list and clears
// itself after a delay or when the list hides.
type Announcer struct {
	Text    string
	IsError bool
	Clear   time.Duration

	id int
}

// Announce sets the text and returns a command that clears it after the
// display period. A zero Clear duration uses the default.
func (a *Announcer) Announce(text string, isError bool) tea.Cmd {
	a.Text = text
	a.IsError = isError
	a.id++
	id := a.id
	delay := a.Clear
	if delay <= 0 {
		delay = DefaultAnnounceClear
	}
	return func() tea.Msg {
		time.Sleep(delay)
		return AnnounceClearMsg{ID: id}
	}
}

// Handle processes a clear message, dropping stale timers.
func (a *Announcer) Handle(msg AnnounceClearMsg) {
	if msg.ID == a.id {
		a.Text = ""
		a.IsError = false
	}
}

// Reset wipes the announcement immediately and invalidates pending timers.
func (a *Announcer) Reset() {
	a.id++
	a.Text = ""
	a.IsError = false
}

package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounceSetsTextAndSchedulesClear(t *testing.T) {
	a := Announcer{Clear: time.Millisecond}

	cmd := a.Announce("3 results", false)
	require.NotNil(t, cmd)
	assert.Equal(t, "3 results", a.Text)

	msg, ok := cmd().(AnnounceClearMsg)
	require.True(t, ok)
	a.Handle(msg)
	assert.Empty(t, a.Text)
}

func TestStaleClearDoesNotWipeNewerAnnouncement(t *testing.T) {
	a := Announcer{Clear: time.Millisecond}

	first := a.Announce("old", false)
	firstClear := first().(AnnounceClearMsg)
	_ = a.Announce("new", false)

	a.Handle(firstClear)

	assert.Equal(t, "new", a.Text, "an older timer must not clear a newer announcement")
}

func TestResetClearsImmediately(t *testing.T) {
	a := Announcer{Clear: time.Millisecond}
	cmd := a.Announce("oops", true)

	a.Reset()
	assert.Empty(t, a.Text)
	assert.False(t, a.IsError)

	// The pending timer is now stale and must stay a no-op.
	a.Handle(cmd().(AnnounceClearMsg))
	assert.Empty(t, a.Text)
}

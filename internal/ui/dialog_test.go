package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogStartsClosed(t *testing.T) {
	d := NewDialogModel("Confirm", "Proceed?")
	assert.False(t, d.Open())
	assert.Empty(t, d.View())
}

func TestSetOpenForwardsAndFiresToggle(t *testing.T) {
	d := NewDialogModel("Confirm", "Proceed?")
	var transitions []bool
	d.OnToggle = func(open bool) { transitions = append(transitions, open) }

	d.SetOpen(true)
	d.SetOpen(true) // idempotent, no second toggle
	d.SetOpen(false)

	assert.Equal(t, []bool{true, false}, transitions)
}

func TestToggleFlipsState(t *testing.T) {
	d := NewDialogModel("x", "")
	d.Toggle()
	assert.True(t, d.Open())
	d.Toggle()
	assert.False(t, d.Open())
}

func TestEscapeClosesDialog(t *testing.T) {
	d := NewDialogModel("Confirm", "Proceed?")
	var toggled int
	d.OnToggle = func(bool) { toggled++ }
	d.SetOpen(true)

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	assert.Nil(t, cmd)
	assert.False(t, d.Open())
	assert.Equal(t, DialogResultCancel, d.Result())
	assert.Equal(t, 2, toggled)
}

func TestEnterSubmitsDialog(t *testing.T) {
	d := NewDialogModel("Confirm", "Proceed?")
	d.SetOpen(true)

	_, _ = d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.False(t, d.Open())
	assert.Equal(t, DialogResultSubmit, d.Result())

	// Reopening clears the previous result.
	d.SetOpen(true)
	assert.Equal(t, DialogResultNone, d.Result())
}

func TestDialogIgnoresInputWhenClosed(t *testing.T) {
	d := NewDialogModel("Confirm", "Proceed?")
	_, _ = d.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, d.Open())
}

func TestDialogViewContainsTitleAndBody(t *testing.T) {
	d := NewDialogModel("Delete file", "This cannot be undone.")
	d.NoColor = true
	d.SetSize(50, 10)
	d.SetOpen(true)

	view := d.View()

	require.NotEmpty(t, view)
	assert.Contains(t, view, "Delete file")
	assert.Contains(t, view, "This cannot be undone.")
	assert.Contains(t, view, "esc close")
}

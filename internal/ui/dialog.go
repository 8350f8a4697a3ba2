package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DialogResult represents the outcome of a dialog interaction.
type DialogResult int

const (
	// DialogResultNone indicates no result yet (dialog still open or unopened).
	DialogResultNone DialogResult = iota
	// DialogResultSubmit indicates the user confirmed.
	DialogResultSubmit
	// DialogResultCancel indicates the user dismissed the dialog.
	DialogResultCancel
)

// DialogModel adapts a declarative Open flag to a modal overlay. Beyond
// visibility and the last interaction result it carries no state: SetOpen
// forwards the flag on every update and the toggle callback fires on each
// transition.
type DialogModel struct {
	Title   string
	Body    string
	NoColor bool

	// OnToggle fires after every open/close transition.
	OnToggle func(open bool)

	open   bool
	result DialogResult
	width  int
	height int
}

// NewDialogModel creates a closed dialog.
func NewDialogModel(title, body string) *DialogModel {
	return &DialogModel{
		Title:  title,
		Body:   body,
		width:  50,
		height: 9,
	}
}

// Open reports the dialog's visibility.
func (d *DialogModel) Open() bool { return d.open }

// Result reports the outcome of the last interaction. Opening the dialog
// resets it to DialogResultNone.
func (d *DialogModel) Result() DialogResult { return d.result }

// SetOpen forwards the host's open property to the modal state. Setting the
// current value is a no-op; a transition fires OnToggle.
func (d *DialogModel) SetOpen(open bool) {
	if d.open == open {
		return
	}
	d.open = open
	if open {
		d.result = DialogResultNone
	}
	if d.OnToggle != nil {
		d.OnToggle(open)
	}
}

// Toggle flips the open state.
func (d *DialogModel) Toggle() {
	d.SetOpen(!d.open)
}

// SetSize sets the available width and height.
func (d *DialogModel) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update handles messages while the dialog is open. Enter confirms, escape
// dismisses; all other input is swallowed, keeping the dialog modal.
func (d *DialogModel) Update(msg tea.Msg) (*DialogModel, tea.Cmd) {
	if !d.open {
		return d, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			d.result = DialogResultSubmit
			d.SetOpen(false)
		case "esc":
			d.result = DialogResultCancel
			d.SetOpen(false)
		}
	}
	return d, nil
}

// View renders the modal frame, or nothing when closed.
func (d *DialogModel) View() string {
	if !d.open {
		return ""
	}

	innerWidth := d.width - 4
	if innerWidth < 16 {
		innerWidth = 16
	}

	title := d.Title
	body := d.Body
	if !d.NoColor {
		th := CurrentTheme()
		title = lipgloss.NewStyle().Foreground(th.TitleColor).Bold(true).Render(title)
	}

	content := title
	if body != "" {
		content += "\n\n" + body
	}
	content += "\n\n" + d.hint()

	frame := lipgloss.NewStyle().
		Border(borderForTheme(CurrentTheme())).
		Padding(0, 1).
		Width(innerWidth)
	if !d.NoColor {
		frame = frame.BorderForeground(CurrentTheme().BorderColor)
	}

	return strings.TrimRight(frame.Render(content), "\n") + "\n"
}

func (d *DialogModel) hint() string {
	hint := "enter confirm / esc close"
	if d.NoColor {
		return hint
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme().MutedColor).Render(hint)
}

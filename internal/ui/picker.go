package ui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/aliasimkazmi/core-components/internal/candidate"
	"github.com/aliasimkazmi/core-components/internal/config"
)

// PickerModel is the root model for interactive picking: a suggest widget
// plus an optional confirm dialog. The program quits once a selection is
// accepted or the user cancels.
type PickerModel struct {
	Suggest *SuggestModel
	Confirm *DialogModel

	// ConfirmSelect routes every selection through the confirm dialog
	// before it becomes the final choice.
	ConfirmSelect bool

	pending  *candidate.Candidate
	choice   *candidate.Candidate
	canceled bool
	width    int
	height   int
}

// NewPickerModel builds a picker over the given candidate source.
func NewPickerModel(src candidate.Source, opts config.Options) *PickerModel {
	return &PickerModel{
		Suggest: NewSuggestModel(src, opts),
		Confirm: NewDialogModel("Confirm selection", ""),
	}
}

// Choice returns the accepted candidate, if any.
func (p *PickerModel) Choice() (candidate.Candidate, bool) {
	if p.choice == nil {
		return candidate.Candidate{}, false
	}
	return *p.choice, true
}

// Canceled reports whether the user quit without selecting.
func (p *PickerModel) Canceled() bool { return p.canceled }

// Init focuses the input and starts the cursor blink.
func (p *PickerModel) Init() tea.Cmd {
	return tea.Batch(p.Suggest.Init(), p.Suggest.Focus())
}

// Update routes messages to the confirm dialog while it is open, otherwise
// to the suggest widget. Ctrl+C always cancels; Escape cancels once the
// candidate list is already hidden.
func (p *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.Suggest.SetSize(msg.Width, msg.Height)
		p.Confirm.SetSize(msg.Width, msg.Height)
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p.cancel()
		}
		if p.Confirm.Open() {
			return p.updateConfirm(msg)
		}
		if msg.String() == "esc" && !p.Suggest.Open() {
			return p.cancel()
		}

	case SelectedMsg:
		if p.ConfirmSelect {
			c := msg.Candidate
			p.pending = &c
			p.Confirm.Body = fmt.Sprintf("Select %q?", c.SelectValue())
			p.Confirm.SetOpen(true)
			return p, nil
		}
		c := msg.Candidate
		p.choice = &c
		return p, tea.Quit
	}

	if p.Confirm.Open() {
		return p.updateConfirm(msg)
	}

	var cmd tea.Cmd
	p.Suggest, cmd = p.Suggest.Update(msg)
	return p, cmd
}

func (p *PickerModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.Confirm, cmd = p.Confirm.Update(msg)
	if p.Confirm.Open() {
		return p, cmd
	}
	switch p.Confirm.Result() {
	case DialogResultSubmit:
		p.choice = p.pending
		p.pending = nil
		return p, tea.Quit
	case DialogResultCancel:
		p.pending = nil
		return p, tea.Batch(cmd, p.Suggest.Focus())
	}
	return p, cmd
}

func (p *PickerModel) cancel() (tea.Model, tea.Cmd) {
	p.canceled = true
	p.Suggest.Close()
	return p, tea.Quit
}

// View renders the suggest widget, with the confirm dialog replacing the
// candidate list while it is open.
func (p *PickerModel) View() tea.View {
	var body string
	if p.Confirm.Open() {
		body = p.Suggest.Input.View() + "\n" + p.Confirm.View()
	} else {
		body = p.Suggest.View()
	}
	if p.Suggest.NoColor {
		body = stripANSI(body)
	}
	return tea.NewView(body)
}

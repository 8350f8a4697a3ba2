// Package widgets is the public entry point for the suggest picker. Host
// applications describe the run with a Config and receive the accepted
// candidate back; terminal plumbing stays inside the package.
package widgets

import (
	"io"
	"os"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/aliasimkazmi/core-components/internal/candidate"
	"github.com/aliasimkazmi/core-components/internal/config"
	"github.com/aliasimkazmi/core-components/internal/ui"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by
// probing stdout, stderr, and stdin, then falling back to the COLUMNS
// environment variable. If detection fails completely, returns generous
// defaults (120, 24) to avoid overly narrow output in CI or non-TTY
// environments.
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// Run starts the Bubble Tea picker with the provided config and blocks until
// a candidate is accepted or the user cancels. Host applications can pass
// optional tea.ProgramOption values to control IO.
func Run(cfg Config, opts ...tea.ProgramOption) (Result, error) {
	if err := cfg.options().Validate(); err != nil {
		return Result{Canceled: true}, err
	}

	p, err := newPicker(cfg)
	if err != nil {
		return Result{Canceled: true}, err
	}

	prog := tea.NewProgram(p, opts...)
	finalModel, err := prog.Run()
	if err != nil {
		return Result{Canceled: true}, err
	}

	fm, ok := finalModel.(*ui.PickerModel)
	if !ok || fm == nil {
		return Result{Canceled: true}, nil
	}
	if c, picked := fm.Choice(); picked {
		return Result{Candidate: Candidate{Label: c.Label, Value: c.Value}}, nil
	}
	return Result{Canceled: true}, nil
}

func newPicker(cfg Config) (*ui.PickerModel, error) {
	if name := strings.TrimSpace(cfg.ThemeName); name != "" {
		th, ok := ui.ThemePresets[name]
		if !ok {
			th = ui.DefaultTheme()
		}
		ui.SetTheme(th)
	}

	p := ui.NewPickerModel(cfg.source(), cfg.options())
	if err := p.Suggest.ExtractErr(); err != nil {
		return nil, err
	}
	p.ConfirmSelect = cfg.ConfirmSelect
	p.Suggest.NoColor = cfg.NoColor
	p.Confirm.NoColor = cfg.NoColor
	if strings.TrimSpace(cfg.Placeholder) != "" {
		p.Suggest.Input.Placeholder = cfg.Placeholder
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		w, h := DetectTerminalSize()
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	p.Suggest.SetSize(width, height)
	p.Confirm.SetSize(width, height)

	if cfg.OnFilter != nil {
		p.Suggest.Hooks.FilterStarted = cfg.OnFilter
	}
	if cfg.OnSelect != nil {
		onSelect := cfg.OnSelect
		p.Suggest.Hooks.Select = func(c candidate.Candidate) bool {
			return onSelect(Candidate{Label: c.Label, Value: c.Value})
		}
	}
	if cfg.BeforeSend != nil {
		p.Suggest.Hooks.BeforeSend = cfg.BeforeSend
	}
	return p, nil
}

// ValidHighlightModes lists the accepted Config.Highlight values.
func ValidHighlightModes() []string {
	modes := make([]string, 0, len(config.ValidHighlightModes))
	for _, m := range config.ValidHighlightModes {
		modes = append(modes, string(m))
	}
	return modes
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}

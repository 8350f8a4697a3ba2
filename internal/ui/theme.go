package ui

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines colors and styles used across the widgets. Host apps can
// supply their own theme.
type Theme struct {
	SelectedFG  color.Color // Selected candidate foreground
	SelectedBG  color.Color // Selected candidate background
	HighlightFG color.Color // Match highlight foreground
	HighlightBG color.Color // Match highlight background
	MutedColor  color.Color // Announcer line and position labels
	ErrorColor  color.Color // Fetch error announcements
	BorderColor color.Color // Dialog and list frame
	TitleColor  color.Color // Dialog title
	InputFG     color.Color // Input text
	BorderStyle string      // Border style (normal|rounded)
}

var (
	themeMu      sync.RWMutex
	currentTheme *Theme
)

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		SelectedFG:  lipgloss.Color("250"),
		SelectedBG:  lipgloss.Color("238"),
		HighlightFG: lipgloss.Color("16"),
		HighlightBG: lipgloss.Color("214"),
		MutedColor:  lipgloss.Color("243"),
		ErrorColor:  lipgloss.Color("203"),
		BorderColor: lipgloss.Color("81"),
		TitleColor:  lipgloss.Color("81"),
		InputFG:     lipgloss.Color("252"),
		BorderStyle: "rounded",
	}
}

// ThemePresets maps theme names to palettes selectable from config.
var ThemePresets = map[string]Theme{
	"dark": DefaultTheme(),
	"light": {
		SelectedFG:  lipgloss.Color("235"),
		SelectedBG:  lipgloss.Color("252"),
		HighlightFG: lipgloss.Color("231"),
		HighlightBG: lipgloss.Color("130"),
		MutedColor:  lipgloss.Color("245"),
		ErrorColor:  lipgloss.Color("124"),
		BorderColor: lipgloss.Color("25"),
		TitleColor:  lipgloss.Color("25"),
		InputFG:     lipgloss.Color("235"),
		BorderStyle: "rounded",
	},
}

// CurrentTheme returns the active theme, defaulting to the dark preset.
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if currentTheme != nil {
		return *currentTheme
	}
	return DefaultTheme()
}

// SetTheme replaces the active theme.
func SetTheme(th Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	t := th
	currentTheme = &t
}

// ResetTheme restores the default theme. Used by tests.
func ResetTheme() {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = nil
}

// borderForTheme resolves the lipgloss border for a theme.
func borderForTheme(th Theme) lipgloss.Border {
	if th.BorderStyle == "normal" {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

package ui

// NavAction represents an action triggered by a key while the suggest list
// is attached to the input.
type NavAction string

const (
	NavNone   NavAction = ""
	NavNext   NavAction = "next"   // Move to next visible candidate, wrapping to the input
	NavPrev   NavAction = "prev"   // Move to previous visible candidate, wrapping to the last
	NavFirst  NavAction = "first"  // Jump to first visible candidate (only while in the list)
	NavLast   NavAction = "last"   // Jump to last visible candidate (only while in the list)
	NavHide   NavAction = "hide"   // Hide the list without selecting
	NavSelect NavAction = "select" // Select the focused candidate
)

// NavKeyBindings maps keys to list navigation actions. This is the default
// mapping; it can be overridden per widget.
var NavKeyBindings = map[string]NavAction{
	"down":   NavNext,
	"up":     NavPrev,
	"home":   NavFirst,
	"pgup":   NavFirst,
	"end":    NavLast,
	"pgdown": NavLast,
	"esc":    NavHide,
	"enter":  NavSelect,
}

// listOnly reports whether an action applies only when the focus is already
// inside the list. Home/End and their page-key aliases do not steal the
// cursor from the text input.
func listOnly(a NavAction) bool {
	return a == NavFirst || a == NavLast
}

package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C or Cancel).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the form stays invalid after the
	// configured number of correction rounds.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)

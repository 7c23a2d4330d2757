// Package bubble renders the registration form as a full-screen terminal UI
// built on bubbletea. Every keystroke feeds the form controller, so inline
// errors and the submit state update as the user types.
package bubble

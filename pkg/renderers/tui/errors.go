package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedWidget is returned for widgets the terminal cannot prompt.
	ErrUnsupportedWidget = errors.New("tui: unsupported widget")
)

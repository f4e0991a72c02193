package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns Markdown into console output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer when stdout is a terminal and a
// pass-through renderer otherwise, so piped output stays plain Markdown.
func NewRenderer() Renderer {
	if !IsTerminal(os.Stdout) {
		return Plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain returns the Markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

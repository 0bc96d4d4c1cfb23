package ui

import (
	"io"

	"github.com/pterm/pterm"
)

// Warn prints a pterm warning line to w
func Warn(w io.Writer, msg string) {
	pterm.Warning.WithWriter(w).Println(msg)
}

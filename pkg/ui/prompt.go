package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

// Prompter asks questions on the terminal with pterm's interactive printers
type Prompter struct{}

// NewPrompter returns a terminal prompter
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Confirm asks a yes/no question
func (p *Prompter) Confirm(prompt string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(prompt)
}

// Select asks to pick one of options. An unknown def selects the first option.
func (p *Prompter) Select(prompt string, options []string, def string) (string, error) {
	printer := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithMaxHeight(len(options))
	if def != "" && indexOf(options, def) >= 0 {
		printer = printer.WithDefaultOption(def)
	}
	return printer.Show(prompt)
}

// Input asks for free text; an empty answer keeps def
func (p *Prompter) Input(prompt string, def string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(def).
		Show(prompt)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func indexOf(list []string, s string) int {
	for i, item := range list {
		if item == s {
			return i
		}
	}
	return -1
}

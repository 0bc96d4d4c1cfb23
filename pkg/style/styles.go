// Package style holds the lipgloss styles shared by every command's output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	// Template names in listings
	NameStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
)

// Provenance styles
var (
	LocalStyle = lipgloss.NewStyle().
			Foreground(LocalColor)

	BundledStyle = lipgloss.NewStyle().
			Foreground(BundledColor)
)

// Indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
)

// SourceTag renders a "[local]" / "[bundled]" tag
func SourceTag(source string) string {
	tag := "[" + source + "]"
	switch source {
	case "local":
		return LocalStyle.Render(tag)
	case "bundled":
		return BundledStyle.Render(tag)
	}
	return MutedStyle.Render(tag)
}

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

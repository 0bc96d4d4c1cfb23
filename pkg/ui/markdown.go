package ui

import (
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for the terminal with glamour. Plain
// output, or any glamour failure, returns the content unchanged.
func RenderMarkdown(content string, rich bool, width int) string {
	if !rich {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	logger := logging.GetLogger("ui")
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("markdown renderer unavailable")
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("markdown rendering failed")
		return content
	}
	return rendered
}

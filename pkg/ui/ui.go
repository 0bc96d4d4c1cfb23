// Package ui renders command results for people and for machines.
// Text formats ask the result to describe itself through Texter; JSON and
// YAML encode the result value directly.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/style"
	"gopkg.in/yaml.v3"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message, which may carry style markup
	RenderMessage(msg string) error
}

// Texter is implemented by results that know how to print themselves.
// The returned text may contain style markup such as [path]...[/path].
type Texter interface {
	Text() string
}

// NewRenderer creates a new renderer based on the specified format.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return &textRenderer{w: output, rich: true}, nil
	case FormatText:
		return &textRenderer{w: output}, nil
	case FormatJSON:
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return &encodingRenderer{encode: enc.Encode}, nil
	case FormatYAML:
		return &encodingRenderer{encode: func(v interface{}) error {
			enc := yaml.NewEncoder(output)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

type textRenderer struct {
	w    io.Writer
	rich bool
}

func (r *textRenderer) markup(s string) string {
	if r.rich {
		return style.Render(s)
	}
	return style.Strip(s)
}

func (r *textRenderer) RenderResult(result interface{}) error {
	var text string
	switch v := result.(type) {
	case Texter:
		text = v.Text()
	case string:
		text = v
	default:
		text = fmt.Sprintf("%v\n", v)
	}
	_, err := io.WriteString(r.w, r.markup(text))
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.w, r.markup("[error]Error:[/error] "+errors.GetMessage(err)))
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, r.markup(msg))
	return err
}

type encodingRenderer struct {
	encode func(v interface{}) error
}

func (r *encodingRenderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

func (r *encodingRenderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": errors.GetMessage(err),
		"code":  string(errors.GetErrorCode(err)),
	}
	return r.encode(obj)
}

func (r *encodingRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": style.Strip(msg)})
}

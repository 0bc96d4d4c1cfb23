package style

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestMarkupRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "plain text untouched",
			input:    "nothing to see",
			contains: []string{"nothing to see"},
		},
		{
			name:     "single tag",
			input:    "Project created at: [path]/tmp/demo[/path]",
			contains: []string{"Project created at: ", "/tmp/demo"},
			absent:   []string{"[path]", "[/path]"},
		},
		{
			name:     "several tags",
			input:    "[name]fastapi[/name] [bundled]bundled[/bundled]",
			contains: []string{"fastapi", "bundled"},
			absent:   []string{"[name]", "[/bundled]"},
		},
		{
			name:     "nested tags",
			input:    "[bold][success]ok[/success][/bold]",
			contains: []string{"ok"},
			absent:   []string{"[success]", "[bold]"},
		},
		{
			name:     "unknown tag left alone",
			input:    "[nope]x[/nope]",
			contains: []string{"[nope]x[/nope]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestAddStyle(t *testing.T) {
	p := NewMarkupParser()
	p.AddStyle("custom", lipgloss.NewStyle())
	assert.Equal(t, "hello", p.Render("[custom]hello[/custom]"))
}

func TestSourceTag(t *testing.T) {
	for _, source := range []string{"local", "bundled", "other"} {
		t.Run(source, func(t *testing.T) {
			assert.Contains(t, SourceTag(source), "["+source+"]")
		})
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "Hello", Indent("Hello", 0))
	assert.True(t, strings.HasSuffix(Indent("Hello", 2), "Hello"))
	assert.Equal(t, "    Hello", Indent("Hello", 2))
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "created /tmp/x\tok", Strip("created [path]/tmp/x[/path]\t[bold][success]ok[/success][/bold]"))
	assert.Equal(t, "[nope]x[/nope]", Strip("[nope]x[/nope]"))
}

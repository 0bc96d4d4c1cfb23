package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with the matching style
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser knowing the package styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, st := range map[string]lipgloss.Style{
		"title":   TitleStyle,
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"info":    InfoStyle,
		"code":    CodeStyle,
		"path":    PathStyle,
		"muted":   MutedStyle,
		"name":    NameStyle,
		"bold":    lipgloss.NewStyle().Bold(true),
		"local":   LocalStyle,
		"bundled": BundledStyle,
	} {
		p.AddStyle(tag, st)
	}
	return p
}

// Render replaces every tagged span, innermost first
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for tag, pattern := range p.patterns {
			st := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := pattern.FindStringSubmatch(match)
				return st.Render(sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// AddStyle registers or replaces a tag
func (p *MarkupParser) AddStyle(tag string, st lipgloss.Style) {
	p.styles[tag] = st
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

var defaultParser = NewMarkupParser()

// Render renders markup with the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip removes the markup tags and keeps their content unstyled
func (p *MarkupParser) Strip(text string) string {
	result := text
	for {
		before := result
		for _, pattern := range p.patterns {
			result = pattern.ReplaceAllString(result, "$1")
		}
		if result == before {
			return result
		}
	}
}

// Strip removes markup with the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}

// Package substitute replaces {{ identifier }} tokens in text.
//
// Tokens are a double brace, optional whitespace, one or more word
// characters, optional whitespace and a closing double brace. Identifiers
// missing from the assignment are left untouched so partially rendered
// output and validation tooling can still see them. Replacement is a single
// pass: values are never rescanned for tokens.
package substitute

import "regexp"

var tokenPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Substitute replaces every known token in text with its value.
func Substitute(text string, assignment map[string]string) string {
	if len(assignment) == 0 {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		if value, ok := assignment[name]; ok {
			return value
		}
		return token
	})
}

// Tokens returns the identifiers referenced in text, de-duplicated in
// first-seen order.
func Tokens(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// HasTokens reports whether text contains at least one token.
func HasTokens(text string) bool {
	return tokenPattern.MatchString(text)
}

// Package conditions evaluates the single-equality expressions that gate
// template paths, and turns a manifest's conditional rules into the set of
// path names excluded from a render.
package conditions

import (
	"regexp"
	"sort"

	"github.com/arthur-debert/scaffold/pkg/errors"
)

var expressionPattern = regexp.MustCompile(`^\s*(\w+)\s*==\s*(?:"([^"]*)"|'([^']*)'|(\w+))\s*$`)

// Expression is a parsed `identifier == literal` test.
type Expression struct {
	Variable string
	Literal  string
}

// Parse parses an expression of the form `identifier == literal`, where the
// literal is single-quoted, double-quoted or a bare word.
func Parse(expr string) (Expression, error) {
	m := expressionPattern.FindStringSubmatchIndex(expr)
	if m == nil {
		return Expression{}, errors.Newf(errors.ErrConfigValid, "invalid condition %q: expected `name == value`", expr).
			WithDetail("expression", expr)
	}

	e := Expression{Variable: expr[m[2]:m[3]]}
	// Groups 2-4 are the double-quoted, single-quoted and bare literal
	for g := 2; g <= 4; g++ {
		if m[2*g] >= 0 {
			e.Literal = expr[m[2*g]:m[2*g+1]]
			break
		}
	}
	return e, nil
}

// Matches reports whether the assignment holds the expected value. A
// variable missing from the assignment never matches.
func (e Expression) Matches(assignment map[string]string) bool {
	value, ok := assignment[e.Variable]
	return ok && value == e.Literal
}

// Evaluate parses and evaluates expr. Malformed expressions evaluate to false.
func Evaluate(expr string, assignment map[string]string) bool {
	e, err := Parse(expr)
	if err != nil {
		return false
	}
	return e.Matches(assignment)
}

// Rule is one conditional from a template manifest. Exactly one of Include
// or Exclude names a path segment.
type Rule struct {
	Include string `toml:"include,omitempty" json:"include,omitempty" yaml:"include,omitempty"`
	Exclude string `toml:"exclude,omitempty" json:"exclude,omitempty" yaml:"exclude,omitempty"`
	When    string `toml:"when" json:"when" yaml:"when"`
}

// Path returns the path segment the rule applies to.
func (r Rule) Path() string {
	if r.Include != "" {
		return r.Include
	}
	return r.Exclude
}

// IsInclude reports whether the rule is an include rule.
func (r Rule) IsInclude() bool {
	return r.Include != ""
}

// Validate checks that exactly one of include/exclude is set and that the
// when expression parses.
func (r Rule) Validate() error {
	switch {
	case r.Include == "" && r.Exclude == "":
		return errors.New(errors.ErrConfigValid, "conditional must set one of 'include' or 'exclude'")
	case r.Include != "" && r.Exclude != "":
		return errors.Newf(errors.ErrConfigValid, "conditional sets both include %q and exclude %q", r.Include, r.Exclude)
	}
	if _, err := Parse(r.When); err != nil {
		return err
	}
	return nil
}

// Excludes reports whether the rule removes its path under assignment.
// Include rules exclude when the condition is false, exclude rules when it
// is true. A rule with no path excludes nothing.
func (r Rule) Excludes(assignment map[string]string) bool {
	if r.Path() == "" {
		return false
	}
	holds := Evaluate(r.When, assignment)
	if r.IsInclude() {
		return !holds
	}
	return holds
}

// Set is a set of excluded path-segment names.
type Set map[string]struct{}

// NewSet builds a set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether name is excluded. A nil set excludes nothing.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the excluded names sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Exclusions computes the union of paths excluded by rules under assignment.
func Exclusions(rules []Rule, assignment map[string]string) Set {
	set := make(Set)
	for _, r := range rules {
		if r.Excludes(assignment) {
			set.Add(r.Path())
		}
	}
	return set
}

package substitute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		assignment map[string]string
		want       string
	}{
		{
			name:       "simple token",
			text:       "{{project_name}}",
			assignment: map[string]string{"project_name": "demo"},
			want:       "demo",
		},
		{
			name:       "interior whitespace",
			text:       "name = \"{{  project_name }}\"",
			assignment: map[string]string{"project_name": "demo"},
			want:       "name = \"demo\"",
		},
		{
			name:       "multiple tokens on one line",
			text:       "{{a}}-{{b}}-{{a}}",
			assignment: map[string]string{"a": "1", "b": "2"},
			want:       "1-2-1",
		},
		{
			name:       "unknown token passes through",
			text:       "hello {{ who }} from {{project_name}}",
			assignment: map[string]string{"project_name": "demo"},
			want:       "hello {{ who }} from demo",
		},
		{
			name:       "values are not rescanned",
			text:       "{{a}}",
			assignment: map[string]string{"a": "{{b}}", "b": "nope"},
			want:       "{{b}}",
		},
		{
			name:       "non word characters are not tokens",
			text:       "{{ foo-bar }} {{}} {{ a b }}",
			assignment: map[string]string{"foo": "x", "a": "y"},
			want:       "{{ foo-bar }} {{}} {{ a b }}",
		},
		{
			name:       "empty value",
			text:       "[{{x}}]",
			assignment: map[string]string{"x": ""},
			want:       "[]",
		},
		{
			name: "nil assignment is identity",
			text: "{{x}} stays",
			want: "{{x}} stays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.text, tt.assignment))
		})
	}
}

func TestSubstituteIdentityWithoutMatches(t *testing.T) {
	assignment := map[string]string{"unused": "v"}
	for _, text := range []string{"", "plain text", "{{ other }}", "{ {x} }", "}}{{"} {
		assert.Equal(t, text, Substitute(text, assignment))
	}
}

func TestSubstituteIsIdempotent(t *testing.T) {
	assignment := map[string]string{"project_name": "demo", "author": "Ada"}
	for _, text := range []string{
		"{{project_name}} by {{ author }}",
		"{{missing}} {{project_name}}",
		"no tokens",
	} {
		once := Substitute(text, assignment)
		assert.Equal(t, once, Substitute(once, assignment), "text %q", text)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, Tokens("{{b}} {{ a }} {{b}}"))
	assert.Nil(t, Tokens("nothing here"))
	assert.True(t, HasTokens("x {{y}}"))
	assert.False(t, HasTokens("x {{y-z}}"))
}

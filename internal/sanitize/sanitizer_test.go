package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "label scenario with contains clause",
			input:    "Ingredients: Water, Sugar, CONTAINS: Milk, Soy",
			expected: "WATER, SUGAR,",
		},
		{
			name:     "may contain clause truncates to end",
			input:    "Water, Sugar MAY CONTAIN traces of nuts and more sugar",
			expected: "WATER, SUGAR",
		},
		{
			name:     "ingredients label removed mid-string",
			input:    "Front text INGREDIENTS: Salt, Oats",
			expected: "FRONT TEXT  SALT, OATS",
		},
		{
			name:     "digits and punctuation stripped",
			input:    "Wheat flour (62%), salt 1.5g; E330!",
			expected: "WHEAT FLOUR , SALT G E",
		},
		{
			name:     "contains clause spans newlines",
			input:    "Water, Oats\nCONTAINS: milk\nmore text",
			expected: "WATER, OATS",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanOutputAlphabet(t *testing.T) {
	inputs := []string{
		"Ingredients: Water, Sugar, CONTAINS: Milk",
		"weird \x00 bytes & symbols @#$%^&*()",
		"Zucker 12g, Wasser 88%",
		"MAY CONTAIN nuts INGREDIENTS: twice",
	}

	for _, input := range inputs {
		out := Clean(input)
		for _, r := range out {
			ok := (r >= 'A' && r <= 'Z') || r == ',' || r == ' '
			assert.True(t, ok, "character %q escaped the filter in %q", r, out)
		}
		assert.Equal(t, out, Clean(out), "Clean must be idempotent over its own output")
	}
}

func TestEmpty(t *testing.T) {
	assert.True(t, Empty(""))
	assert.True(t, Empty(", ,  ,"))
	assert.False(t, Empty("WATER"))
	assert.False(t, Empty("WATER, SUGAR,"))
}

// Package sanitize reduces raw OCR output to the ingredient text the
// scoring service accepts. The transform is a fixed sequence of string
// substitutions; their order is part of the contract.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// The boilerplate label is removed wherever it occurs, not just at
	// the start of the text.
	ingredientsLabel = regexp.MustCompile(`(?i)INGREDIENTS:`)

	// Allergen clauses are removed as whole phrases to the end of the
	// text. These must run before the character filter, otherwise the
	// filter would leave orphaned fragments of the marker phrases.
	containsClause   = regexp.MustCompile(`(?is)CONTAINS:.*`)
	mayContainClause = regexp.MustCompile(`(?is)MAY CONTAIN.*`)

	disallowed = regexp.MustCompile(`[^A-Z, ]`)
)

// Clean applies the six-step ingredient cleanup, in order: upper-case,
// strip the INGREDIENTS: label, truncate from CONTAINS:, truncate from
// MAY CONTAIN, drop every rune outside {A-Z, comma, space}, trim.
// Pure and deterministic; idempotent over its own output alphabet.
func Clean(text string) string {
	text = strings.ToUpper(text)
	text = ingredientsLabel.ReplaceAllString(text, "")
	text = containsClause.ReplaceAllString(text, "")
	text = mayContainClause.ReplaceAllString(text, "")
	text = disallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Empty reports whether cleaned text carries no ingredient content at
// all, counting separator-only leftovers as empty.
func Empty(cleaned string) bool {
	return strings.TrimFunc(cleaned, func(r rune) bool {
		return r == ',' || r == ' '
	}) == ""
}

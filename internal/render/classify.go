// Package render maps analysis documents to their visual classification
// and writes terminal reports. Classification tables are ordered match
// rules, first match wins, so the tie-break order stays explicit.
package render

import "strings"

// ScoreStyle is the color pair for a final score.
type ScoreStyle struct {
	ScoreColor string
	CardColor  string
}

// LabelStyle is the visual treatment of a single ingredient.
type LabelStyle struct {
	CardColor  string
	LabelColor string
	Emoji      string
}

// Score bands use inclusive lower bounds, evaluated top-down.
var scoreBands = []struct {
	min   float64
	style ScoreStyle
}{
	{8, ScoreStyle{ScoreColor: "#4CAF50", CardColor: "#E8F5E9"}}, // green
	{6, ScoreStyle{ScoreColor: "#8BC34A", CardColor: "#F1F8E9"}}, // light green
	{4, ScoreStyle{ScoreColor: "#FF9800", CardColor: "#FFF3E0"}}, // orange
	{2, ScoreStyle{ScoreColor: "#FF5722", CardColor: "#FFEBEE"}}, // deep orange
}

var scoreFallback = ScoreStyle{ScoreColor: "#F44336", CardColor: "#FFCDD2"} // red

// Label bands match case-insensitive substrings of the ingredient label,
// checked in order.
var labelBands = []struct {
	keywords []string
	style    LabelStyle
}{
	{[]string{"healthy", "excellent"}, LabelStyle{CardColor: "#E8F5E9", LabelColor: "#4CAF50", Emoji: "✅"}},
	{[]string{"caution", "moderate"}, LabelStyle{CardColor: "#FFF3E0", LabelColor: "#FF9800", Emoji: "⚠️"}},
	{[]string{"avoid", "harmful"}, LabelStyle{CardColor: "#FFEBEE", LabelColor: "#F44336", Emoji: "❌"}},
}

var labelFallback = LabelStyle{CardColor: "#F5F5F5", LabelColor: "#757575", Emoji: "❓"}

// ScoreBand classifies a final score. Boundary values select the higher
// band.
func ScoreBand(score float64) ScoreStyle {
	for _, band := range scoreBands {
		if score >= band.min {
			return band.style
		}
	}
	return scoreFallback
}

// LabelBand classifies an ingredient label.
func LabelBand(label string) LabelStyle {
	l := strings.ToLower(label)
	for _, band := range labelBands {
		for _, kw := range band.keywords {
			if strings.Contains(l, kw) {
				return band.style
			}
		}
	}
	return labelFallback
}

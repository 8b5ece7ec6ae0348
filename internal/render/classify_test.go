package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBand(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		scoreColor string
	}{
		{"top band is inclusive", 8.0, "#4CAF50"},
		{"just below top band", 7.99, "#8BC34A"},
		{"light green lower bound", 6.0, "#8BC34A"},
		{"orange band", 4.0, "#FF9800"},
		{"just below orange", 3.99, "#FF5722"},
		{"deep orange lower bound", 2.0, "#FF5722"},
		{"zero is red", 0, "#F44336"},
		{"negative is red", -1, "#F44336"},
		{"above range still green", 11, "#4CAF50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.scoreColor, ScoreBand(tt.score).ScoreColor)
		})
	}
}

func TestScoreBandCardColors(t *testing.T) {
	assert.Equal(t, "#E8F5E9", ScoreBand(9).CardColor)
	assert.Equal(t, "#FFCDD2", ScoreBand(1).CardColor)
}

func TestLabelBand(t *testing.T) {
	tests := []struct {
		name  string
		label string
		emoji string
		color string
	}{
		{"harmful matches before default", "Potentially Harmful", "❌", "#F44336"},
		{"healthy substring", "Generally Healthy", "✅", "#4CAF50"},
		{"excellent is green", "Excellent choice", "✅", "#4CAF50"},
		{"caution is orange", "Caution", "⚠️", "#FF9800"},
		{"moderate is orange", "Moderate intake", "⚠️", "#FF9800"},
		{"avoid is red", "Avoid", "❌", "#F44336"},
		{"case insensitive", "HEALTHY", "✅", "#4CAF50"},
		{"unknown falls back", "Unknown", "❓", "#757575"},
		{"empty falls back", "", "❓", "#757575"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := LabelBand(tt.label)
			assert.Equal(t, tt.emoji, style.Emoji)
			assert.Equal(t, tt.color, style.LabelColor)
		})
	}
}

func TestLabelBandOrderHealthyBeforeCaution(t *testing.T) {
	// A label matching several bands takes the earliest rule.
	style := LabelBand("healthy but consume with caution")
	assert.Equal(t, "✅", style.Emoji)
}

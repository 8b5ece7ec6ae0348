package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultEmptyEnvelope(t *testing.T) {
	for _, envelope := range []string{"", "   ", "\n\t"} {
		result, err := DecodeResult(envelope)
		assert.NoError(t, err)
		assert.Nil(t, result)
	}
}

func TestDecodeResultMalformed(t *testing.T) {
	result, err := DecodeResult("{broken")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &AnalysisResult{
		ProductName:          "Granola Mix",
		FinalScore:           6.5,
		TotalIngredients:     2,
		MatchedIngredients:   1,
		UnmatchedIngredients: 1,
		Recommendation:       "Moderately healthy.",
		Ingredients: []Ingredient{
			{Name: "OATS", MatchedAs: "oats", Score: 8, Label: "Healthy", Confidence: 0.95, Method: "fuzzy"},
			{Name: "XANTHAN GUM", MatchedAs: NotInDatabase, Score: 5, Label: "Unknown"},
		},
		Flags: Flags{HasCaution: true},
	}

	envelope, err := EncodeResult(original)
	require.NoError(t, err)

	decoded, err := DecodeResult(envelope)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeResultWireNames(t *testing.T) {
	envelope := `{
		"product_name": "Choco Bar",
		"final_score": 3.4,
		"total_ingredients": 3,
		"matched_ingredients": 2,
		"unmatched_ingredients": 1,
		"recommendation": "Consider alternatives.",
		"ingredients": [
			{"ingredient": "SUGAR", "matched_as": "sugar", "score": 3,
			 "label": "Caution", "remark": "High intake linked to obesity",
			 "category": "sweetener", "confidence": 0.9, "method": "exact"}
		],
		"flags": {"has_harmful": false, "has_caution": true}
	}`

	result, err := DecodeResult(envelope)
	require.NoError(t, err)

	assert.Equal(t, "Choco Bar", result.ProductName)
	assert.Equal(t, 3.4, result.FinalScore)
	assert.Equal(t, 3, result.TotalIngredients)
	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, "SUGAR", result.Ingredients[0].Name)
	assert.Equal(t, "sugar", result.Ingredients[0].MatchedAs)
	assert.Equal(t, "High intake linked to obesity", result.Ingredients[0].Remark)
	assert.True(t, result.Flags.HasCaution)
	assert.False(t, result.Flags.HasHarmful)
	assert.False(t, result.Failed())
}

func TestFailed(t *testing.T) {
	assert.False(t, (&AnalysisResult{}).Failed())
	assert.True(t, (&AnalysisResult{Error: "analysis failed"}).Failed())
}

func TestIngredientMatched(t *testing.T) {
	assert.True(t, Ingredient{MatchedAs: "sugar"}.Matched())
	assert.False(t, Ingredient{MatchedAs: NotInDatabase}.Matched())
}

func TestIngredientHasConfidence(t *testing.T) {
	assert.True(t, Ingredient{Confidence: 0.4}.HasConfidence())
	assert.False(t, Ingredient{Confidence: 0}.HasConfidence())
	assert.False(t, Ingredient{Confidence: -1}.HasConfidence())
}

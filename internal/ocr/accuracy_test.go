package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareIdenticalText(t *testing.T) {
	report := Compare("Water, Sugar, Salt", "Water, Sugar, Salt")
	assert.Equal(t, 1.0, report.Similarity)
	assert.Equal(t, 0.0, report.WordErrorRate)
	assert.Empty(t, report.MissingWords)
}

func TestCompareIsCaseAndWhitespaceInsensitive(t *testing.T) {
	report := Compare("WATER,  SUGAR", "water, sugar")
	assert.Equal(t, 1.0, report.Similarity)
	assert.Empty(t, report.MissingWords)
}

func TestCompareMissingWords(t *testing.T) {
	// One dropped word out of a three word reference.
	report := Compare("water sugar salt", "water salt")
	assert.Equal(t, []string{"sugar"}, report.MissingWords)
	assert.Less(t, report.Similarity, 1.0)
	assert.Greater(t, report.Similarity, 0.0)
	assert.InDelta(t, 1.0/3, report.WordErrorRate, 1e-9)
}

func TestCompareWordSubstitution(t *testing.T) {
	report := Compare("water sugar salt", "water suger salt")
	assert.InDelta(t, 1.0/3, report.WordErrorRate, 1e-9)
	assert.Equal(t, []string{"sugar"}, report.MissingWords)
}

func TestCompareEmptyStrings(t *testing.T) {
	report := Compare("", "")
	assert.Equal(t, 1.0, report.Similarity)
	assert.Equal(t, 0.0, report.WordErrorRate)

	report = Compare("water", "")
	assert.Equal(t, 0.0, report.Similarity)
	assert.Equal(t, 1.0, report.WordErrorRate)
	assert.Equal(t, []string{"water"}, report.MissingWords)

	report = Compare("", "water")
	assert.Equal(t, 1.0, report.WordErrorRate)
}

func TestCompareSingleCharacterDrift(t *testing.T) {
	// One substitution in a ten character string.
	report := Compare("watersugar", "watersuger")
	assert.InDelta(t, 0.9, report.Similarity, 1e-9)
}

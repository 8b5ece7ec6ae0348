package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NotInDatabase is the sentinel the scoring service places in matched_as
// when an ingredient could not be matched against its database.
const NotInDatabase = "Not in Database"

// AnalysisResult is the scoring service's response document. Field names
// are the authoritative wire contract; the struct is held immutably once
// decoded and never mutated by the pipeline or the renderer.
type AnalysisResult struct {
	ProductName          string       `json:"product_name"`
	FinalScore           float64      `json:"final_score"`
	TotalIngredients     int          `json:"total_ingredients"`
	MatchedIngredients   int          `json:"matched_ingredients"`
	UnmatchedIngredients int          `json:"unmatched_ingredients"`
	Recommendation       string       `json:"recommendation"`
	Ingredients          []Ingredient `json:"ingredients"`
	Flags                Flags        `json:"flags"`
	Error                string       `json:"error,omitempty"`
}

// Ingredient is a single scored entry of an analysis document.
type Ingredient struct {
	Name       string  `json:"ingredient"`
	MatchedAs  string  `json:"matched_as"`
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	Remark     string  `json:"remark"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Flags carries the service's overall warnings. Either, neither, or
// both may be set.
type Flags struct {
	HasHarmful bool `json:"has_harmful"`
	HasCaution bool `json:"has_caution"`
}

// AnalyzeRequest is the payload sent to POST /analyze.
type AnalyzeRequest struct {
	Ingredients string `json:"ingredients"`
	ProductName string `json:"product_name"`
}

// Failed reports whether the document carries a service-side error
// indicator. When it does, every other field is unreliable and must not
// be rendered as a successful analysis.
func (r *AnalysisResult) Failed() bool {
	return r.Error != ""
}

// Matched reports whether the ingredient was found in the service's
// database.
func (i Ingredient) Matched() bool {
	return i.MatchedAs != NotInDatabase
}

// HasConfidence reports whether the confidence value was actually
// provided; values at or below zero mean "unknown".
func (i Ingredient) HasConfidence() bool {
	return i.Confidence > 0
}

// EncodeResult serializes an analysis document to the JSON envelope used
// to hand results between pipeline and renderer.
func EncodeResult(r *AnalysisResult) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode analysis result: %w", err)
	}
	return string(data), nil
}

// DecodeResult parses an envelope back into an analysis document. A
// missing or empty envelope decodes to nil with no error: the receiving
// side treats that as "no result available".
func DecodeResult(envelope string) (*AnalysisResult, error) {
	if strings.TrimSpace(envelope) == "" {
		return nil, nil
	}
	var r AnalysisResult
	if err := json.Unmarshal([]byte(envelope), &r); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}
	return &r, nil
}

package ocr

import (
	"strings"

	"github.com/arbovm/levenshtein"
	"github.com/codycollier/wer"
)

// MatchReport compares recognized text against a reference transcript.
// Similarity is character-level in [0,1]; WordErrorRate is the word-level
// error rate against the reference; MissingWords lists reference words
// the recognizer did not produce at all.
type MatchReport struct {
	Similarity    float64
	WordErrorRate float64
	MissingWords  []string
}

// Compare builds a MatchReport for an expected transcript and the text
// the recognizer actually produced. Comparison is case-insensitive and
// whitespace-normalized.
func Compare(expected, actual string) MatchReport {
	exp := normalizeForComparison(expected)
	act := normalizeForComparison(actual)

	expWords := strings.Fields(exp)
	actWords := strings.Fields(act)

	report := MatchReport{
		Similarity:    similarity(exp, act),
		WordErrorRate: wordErrorRate(expWords, actWords),
	}

	seen := make(map[string]bool)
	for _, w := range actWords {
		seen[w] = true
	}
	for _, w := range expWords {
		if !seen[w] {
			report.MissingWords = append(report.MissingWords, w)
		}
	}
	return report
}

func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	dist := levenshtein.Distance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// wordErrorRate guards the empty-reference case, where the rate has no
// denominator: no reference and no hypothesis is a perfect match, extra
// recognized words against an empty reference count as total error.
func wordErrorRate(ref, hyp []string) float64 {
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 1
	}
	rate, _ := wer.WER(ref, hyp)
	return rate
}

func normalizeForComparison(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

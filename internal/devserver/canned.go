package devserver

import (
	"strings"

	"github.com/arbovm/levenshtein"

	"go-nutriscan/pkg/models"
)

// cannedEntry is one row of the development ingredient table. The table
// is deliberately tiny: it exists so the wire contract can be exercised
// offline, not to score products.
type cannedEntry struct {
	name     string
	score    float64
	label    string
	remark   string
	category string
}

var cannedTable = []cannedEntry{
	{"water", 10, "Healthy", "Essential and harmless", "Base"},
	{"whole wheat flour", 8.5, "Healthy", "Whole grain, good source of fiber", "Grain"},
	{"oats", 9, "Healthy", "Whole grain, good source of fiber", "Grain"},
	{"almond", 8.5, "Healthy", "Beneficial nutrient source", "Nut"},
	{"milk", 7.5, "Generally Healthy", "Good protein and calcium source", "Dairy"},
	{"cocoa", 7, "Generally Healthy", "Antioxidant source in moderation", "Flavor"},
	{"salt", 5, "Moderate", "Fine in small amounts", "Mineral"},
	{"sugar", 3, "Caution", "High sugar content, limit consumption", "Sweetener"},
	{"glucose syrup", 2.5, "Caution", "Refined sweetener, limit consumption", "Sweetener"},
	{"palm oil", 3, "Caution", "High in saturated fat", "Fat"},
	{"refined wheat flour", 4, "Caution", "Refined grain, low fiber", "Grain"},
	{"monosodium glutamate", 3.5, "Caution", "Flavor enhancer, may cause sensitivity", "Additive"},
	{"sodium benzoate", 3, "Caution", "Chemical preservative, consume in moderation", "Preservative"},
	{"artificial color", 2, "Avoid", "Artificial colorant, may cause allergic reactions", "Additive"},
	{"hydrogenated vegetable oil", 1, "Potentially Harmful", "Trans fats, harmful to heart health", "Fat"},
	{"trans fat", 0.5, "Potentially Harmful", "Highly harmful to heart health", "Fat"},
}

const (
	unmatchedScore = 5.0
	// Edit distance budget for the fuzzy lookup, scaled by name length.
	fuzzyDivisor = 4
)

// lookup finds the closest canned entry for an ingredient name, exact
// match first, then smallest edit distance within budget.
func lookup(name string) (cannedEntry, float64, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))

	for _, e := range cannedTable {
		if e.name == needle {
			return e, 1, true
		}
	}

	best := -1
	bestDist := 0
	for i, e := range cannedTable {
		d := levenshtein.Distance(needle, e.name)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}

	budget := len(needle) / fuzzyDivisor
	if budget < 2 {
		budget = 2
	}
	if best >= 0 && bestDist <= budget {
		entry := cannedTable[best]
		longest := len(needle)
		if len(entry.name) > longest {
			longest = len(entry.name)
		}
		confidence := 1 - float64(bestDist)/float64(longest)
		return entry, confidence, true
	}
	return cannedEntry{}, 0, false
}

// analyzeIngredients builds a canned analysis document for a list of
// ingredient names.
func analyzeIngredients(names []string, productName string) *models.AnalysisResult {
	result := &models.AnalysisResult{
		ProductName:      productName,
		TotalIngredients: len(names),
		Ingredients:      make([]models.Ingredient, 0, len(names)),
	}

	var totalScore float64
	for _, name := range names {
		entry, confidence, ok := lookup(name)

		ingredient := models.Ingredient{Name: name}
		if ok {
			ingredient.MatchedAs = entry.name
			ingredient.Score = entry.score
			ingredient.Label = entry.label
			ingredient.Remark = entry.remark
			ingredient.Category = entry.category
			ingredient.Confidence = confidence
			ingredient.Method = "canned"
			result.MatchedIngredients++
		} else {
			ingredient.MatchedAs = models.NotInDatabase
			ingredient.Score = unmatchedScore
			ingredient.Label = "Unknown"
			ingredient.Remark = "Ingredient not found, neutral impact assumed"
			ingredient.Method = "none"
			result.UnmatchedIngredients++
		}

		label := strings.ToLower(ingredient.Label)
		if strings.Contains(label, "avoid") || strings.Contains(label, "harmful") {
			result.Flags.HasHarmful = true
		}
		if strings.Contains(label, "caution") || strings.Contains(label, "moderate") {
			result.Flags.HasCaution = true
		}

		totalScore += ingredient.Score
		result.Ingredients = append(result.Ingredients, ingredient)
	}

	if len(names) > 0 {
		result.FinalScore = totalScore / float64(len(names))
	}
	result.Recommendation = recommendationFor(result.FinalScore, result.Flags)

	return result
}

func recommendationFor(score float64, flags models.Flags) string {
	switch {
	case score >= 8:
		return "Excellent choice! This product looks very healthy."
	case score >= 6:
		return "Good choice overall, with minor concerns."
	case score >= 4:
		if flags.HasHarmful {
			return "Consume sparingly; some ingredients are best avoided."
		}
		return "Consume in moderation."
	case score >= 2:
		return "Not recommended for regular consumption."
	default:
		return "Avoid this product; it contains harmful ingredients."
	}
}

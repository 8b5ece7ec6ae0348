package render

import (
	"fmt"
	"io"
	"strings"

	"go-nutriscan/pkg/models"
)

// ANSI escape codes for the material palette the classification tables
// produce. Unknown colors render unstyled.
var ansiByHex = map[string]string{
	"#4CAF50": "\033[32m",   // green
	"#8BC34A": "\033[92m",   // light green
	"#FF9800": "\033[33m",   // orange
	"#FF5722": "\033[91m",   // deep orange
	"#F44336": "\033[31m",   // red
	"#757575": "\033[90m",   // gray
}

const ansiReset = "\033[0m"

// Reporter writes analysis documents as terminal reports.
type Reporter struct {
	out     io.Writer
	noColor bool
}

// NewReporter creates a reporter. With noColor set the report carries no
// ANSI escapes, only the classification emoji.
func NewReporter(out io.Writer, noColor bool) *Reporter {
	return &Reporter{out: out, noColor: noColor}
}

// Report renders an analysis document. A nil document renders the "no
// result available" notice; a document carrying an error indicator
// renders the degraded failure view without any score or ingredient
// classification.
func (r *Reporter) Report(result *models.AnalysisResult) {
	if result == nil {
		fmt.Fprintln(r.out, "No result available.")
		return
	}
	if result.Failed() {
		r.reportFailure(result)
		return
	}

	style := ScoreBand(result.FinalScore)

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Product: %s\n", result.ProductName)
	fmt.Fprintf(r.out, "Score:   %s%.1f / 10%s\n", r.color(style.ScoreColor), result.FinalScore, r.reset())
	fmt.Fprintf(r.out, "Ingredients: %d total, %d matched, %d unmatched\n",
		result.TotalIngredients, result.MatchedIngredients, result.UnmatchedIngredients)

	if result.Flags.HasHarmful {
		fmt.Fprintf(r.out, "%s❌ Contains potentially harmful ingredients%s\n", r.color("#F44336"), r.reset())
	}
	if result.Flags.HasCaution {
		fmt.Fprintf(r.out, "%s⚠️  Contains ingredients to consume with caution%s\n", r.color("#FF9800"), r.reset())
	}

	if result.Recommendation != "" {
		fmt.Fprintf(r.out, "\n%s\n", result.Recommendation)
	}

	if len(result.Ingredients) > 0 {
		fmt.Fprintln(r.out)
		for i, ing := range result.Ingredients {
			r.reportIngredient(i+1, ing)
		}
	}
}

func (r *Reporter) reportIngredient(position int, ing models.Ingredient) {
	style := LabelBand(ing.Label)

	fmt.Fprintf(r.out, "%2d. %s %s — %s%.1f/10 %s%s\n",
		position, style.Emoji, ing.Name, r.color(style.LabelColor), ing.Score, ing.Label, r.reset())

	if ing.Matched() && ing.MatchedAs != "" {
		fmt.Fprintf(r.out, "    Matched: %s\n", ing.MatchedAs)
	}
	if ing.Category != "" {
		fmt.Fprintf(r.out, "    Category: %s\n", ing.Category)
	}
	if ing.HasConfidence() {
		fmt.Fprintf(r.out, "    Confidence: %.0f%%\n", ing.Confidence*100)
	}
	if ing.Remark != "" {
		fmt.Fprintf(r.out, "    %s\n", ing.Remark)
	}
}

func (r *Reporter) reportFailure(result *models.AnalysisResult) {
	// Blank-but-set error indicators still flag a failure; show the
	// generic notice when they carry no usable text.
	message := strings.TrimSpace(result.Error)
	if message == "" {
		message = "Unable to analyze the product"
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%sAnalysis Failed%s\n", r.color("#F44336"), r.reset())
	fmt.Fprintln(r.out, message)
}

func (r *Reporter) color(hex string) string {
	if r.noColor {
		return ""
	}
	return ansiByHex[hex]
}

func (r *Reporter) reset() string {
	if r.noColor {
		return ""
	}
	return ansiReset
}

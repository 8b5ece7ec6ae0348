package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-nutriscan/internal/ocr"
	"go-nutriscan/internal/pipeline"
	"go-nutriscan/internal/render"
	"go-nutriscan/internal/scoring"
	"go-nutriscan/pkg/models"
)

var (
	scanProductName string
	scanExpect      string
	scanSave        string
	scanShowText    bool
	scanWorkers     int
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>...",
	Short: "Run the full label-to-score pipeline over one or more images",
	Long: `Scan acquires each image (local path, http(s) URL, or
azblob://container/blob), normalizes it for recognition, extracts and
sanitizes the ingredient text, submits it for scoring, and renders the
analysis.

Examples:
  nutriscan scan label.jpg
  nutriscan scan front.jpg back.jpg --workers 2
  nutriscan scan label.jpg --save result.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 && scanSave != "" {
			return errors.New("--save works with a single image only")
		}
		if len(args) > 1 && scanExpect != "" {
			return errors.New("--expect works with a single image only")
		}

		extractor := ocr.NewTesseractExtractor(globalConfig.OCR.Languages...)
		client := scoring.NewClient(globalConfig.Scoring.BaseURL, globalConfig.Scoring.RequestTimeout)

		progress := pipeline.ObserverFunc(func(e pipeline.Event) {
			switch e.Type {
			case pipeline.ScanStarted:
				fmt.Fprintf(os.Stderr, "Analyzing %s ...\n", e.Ref)
			case pipeline.ScanFailed, pipeline.ScanCompleted:
				// Terminal; the outcome handling below reports it.
			}
		})

		p := pipeline.New(extractor, client, pipeline.LoggingObserver{}, progress)

		ctx := context.Background()
		requests := make([]pipeline.Request, len(args))
		for i, ref := range args {
			requests[i] = pipeline.Request{Ref: ref, ProductName: scanProductName}
		}

		var outcomes []*pipeline.Outcome
		if len(requests) == 1 {
			outcome, err := p.Scan(ctx, requests[0])
			if err != nil {
				return err
			}
			outcomes = []*pipeline.Outcome{outcome}
		} else {
			var err error
			outcomes, err = p.ScanBatch(ctx, requests, scanWorkers)
			if err != nil {
				return err
			}
		}

		reporter := render.NewReporter(os.Stdout, noColor)
		failed := 0
		for _, outcome := range outcomes {
			if len(outcomes) > 1 {
				fmt.Printf("\n=== %s ===\n", outcome.Ref)
			}
			if !reportOutcome(reporter, outcome) {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scans failed", failed, len(outcomes))
		}
		return nil
	},
}

// reportOutcome renders one outcome and returns false when it counts as
// a failed scan.
func reportOutcome(reporter *render.Reporter, outcome *pipeline.Outcome) bool {
	if outcome.Err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", outcome.Err)
		return false
	}
	if outcome.NoText {
		fmt.Fprintln(os.Stderr, "No text found in the image.")
		return true
	}

	if scanShowText {
		fmt.Println("Extracted text:")
		fmt.Println(outcome.ExtractedText)
		fmt.Println()
		fmt.Println("Sanitized text:", outcome.SanitizedText)
	}

	if scanExpect != "" {
		report := ocr.Compare(scanExpect, outcome.ExtractedText)
		fmt.Printf("Recognition similarity: %.0f%%\n", report.Similarity*100)
		fmt.Printf("Word error rate: %.0f%%\n", report.WordErrorRate*100)
		if len(report.MissingWords) > 0 {
			fmt.Println("Missing words:", report.MissingWords)
		}
	}

	reporter.Report(outcome.Result)

	if scanSave != "" {
		envelope, err := models.EncodeResult(outcome.Result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not save result: %v\n", err)
			return false
		}
		if err := os.WriteFile(scanSave, []byte(envelope), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Could not save result: %v\n", err)
			return false
		}
		fmt.Fprintf(os.Stderr, "Result saved to %s\n", scanSave)
	}
	return true
}

func init() {
	scanCmd.Flags().StringVar(&scanProductName, "product-name", "", "product name hint sent to the scoring service")
	scanCmd.Flags().StringVar(&scanExpect, "expect", "", "reference transcript to measure recognition accuracy against")
	scanCmd.Flags().StringVar(&scanSave, "save", "", "write the analysis envelope to a file")
	scanCmd.Flags().BoolVar(&scanShowText, "show-text", false, "print the extracted and sanitized text")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "concurrent scans for multiple images (0 = CPU count)")
	rootCmd.AddCommand(scanCmd)
}

// Package pipeline runs the capture-to-result sequence: acquire a label
// photo, normalize it, extract text, sanitize it, and submit it for
// scoring. Failure at any stage short-circuits; downstream stages never
// run on a failed predecessor.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"go-nutriscan/internal/acquire"
	"go-nutriscan/internal/enhance"
	"go-nutriscan/internal/ocr"
	"go-nutriscan/internal/sanitize"
	"go-nutriscan/pkg/models"
)

// ErrScanInFlight is returned when a scan is requested while another is
// still running on the same pipeline.
var ErrScanInFlight = errors.New("a scan is already in flight")

// AnalysisClient is the outbound scoring dependency.
type AnalysisClient interface {
	Analyze(ctx context.Context, ingredients, productName string) (*models.AnalysisResult, error)
}

// Request identifies one image to scan.
type Request struct {
	Ref         string
	ProductName string
}

// Outcome is the terminal state of one scan. Exactly one of these holds
// per initiated scan: Err set, NoText set, or Result set.
type Outcome struct {
	ScanID        string
	Ref           string
	Quality       enhance.Quality
	ExtractedText string
	SanitizedText string
	NoText        bool
	Result        *models.AnalysisResult
	Err           error
}

// Pipeline orchestrates the scan stages. One pipeline value allows a
// single in-flight user action at a time; the busy guard is the CLI
// analog of disabling the analyze control while a request runs.
type Pipeline struct {
	extractor ocr.Extractor
	client    AnalysisClient

	mu        sync.Mutex
	observers []Observer
	busy      atomic.Bool
}

// New creates a pipeline around an extractor and a scoring client.
func New(extractor ocr.Extractor, client AnalysisClient, observers ...Observer) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		client:    client,
		observers: observers,
	}
}

// Subscribe adds an observer for subsequent scans.
func (p *Pipeline) Subscribe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Scan runs the full pipeline for one image. A second call while a scan
// is in flight fails immediately with ErrScanInFlight.
func (p *Pipeline) Scan(ctx context.Context, req Request) (*Outcome, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrScanInFlight
	}
	defer p.busy.Store(false)

	return p.run(ctx, req), nil
}

// ScanBatch runs the pipeline over several images with bounded
// concurrency. The whole batch counts as one user action for the
// in-flight guard. Outcomes are returned in request order.
func (p *Pipeline) ScanBatch(ctx context.Context, reqs []Request, workers int) ([]*Outcome, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrScanInFlight
	}
	defer p.busy.Store(false)

	outcomes := make([]*Outcome, len(reqs))
	pool := newWorkerPool(workers)
	pool.Start()

	var wg sync.WaitGroup
	for i, req := range reqs {
		i, req := i, req
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.run(ctx, req)
		})
	}
	wg.Wait()
	pool.Close()

	return outcomes, nil
}

// run executes the stages for one image and publishes exactly one
// terminal event.
func (p *Pipeline) run(ctx context.Context, req Request) *Outcome {
	start := time.Now()
	outcome := &Outcome{
		ScanID: uuid.NewString(),
		Ref:    req.Ref,
	}

	fail := func(err error) *Outcome {
		outcome.Err = err
		p.publish(Event{Type: ScanFailed, ScanID: outcome.ScanID, Ref: req.Ref, Err: err,
			Timestamp: time.Now(), Elapsed: time.Since(start)})
		return outcome
	}
	stage := func(t EventType, detail string) {
		p.publish(Event{Type: t, ScanID: outcome.ScanID, Ref: req.Ref, Detail: detail,
			Timestamp: time.Now(), Elapsed: time.Since(start)})
	}

	stage(ScanStarted, "")

	source, err := acquire.ForRef(req.Ref)
	if err != nil {
		return fail(err)
	}
	img, err := source.Acquire(ctx)
	if err != nil {
		return fail(err)
	}
	outcome.Quality = enhance.CheckQuality(img)
	acquiredDetail := fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	if warnings := outcome.Quality.Warnings(); len(warnings) > 0 {
		acquiredDetail += "; " + strings.Join(warnings, "; ")
	}
	stage(ImageAcquired, acquiredDetail)

	normalized := enhance.Normalize(img)

	text, err := p.extractor.ExtractText(ctx, normalized)
	if err != nil {
		return fail(err)
	}
	outcome.ExtractedText = text
	stage(TextExtracted, fmt.Sprintf("%d chars", len(text)))

	// Nothing recognized is a valid terminal outcome, not a failure; the
	// scoring service is never called for it.
	if text == "" {
		outcome.NoText = true
		stage(ScanCompleted, "no text recognized")
		return outcome
	}

	cleaned := sanitize.Clean(text)
	outcome.SanitizedText = cleaned
	stage(TextSanitized, fmt.Sprintf("%d chars", len(cleaned)))

	if sanitize.Empty(cleaned) {
		outcome.NoText = true
		stage(ScanCompleted, "no ingredient text left after cleanup")
		return outcome
	}

	result, err := p.client.Analyze(ctx, cleaned, req.ProductName)
	if err != nil {
		return fail(err)
	}
	outcome.Result = result
	stage(AnalysisReceived, "")
	stage(ScanCompleted, "")

	return outcome
}

func (p *Pipeline) publish(event Event) {
	p.mu.Lock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()

	for _, o := range observers {
		o.OnEvent(event)
	}
}

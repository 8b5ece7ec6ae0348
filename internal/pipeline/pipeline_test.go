package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-nutriscan/internal/errors"
	"go-nutriscan/pkg/models"
)

// writeTestImage writes a small PNG and returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 180, B: 180, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "label.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

type fakeExtractor struct {
	text    string
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeExtractor) ExtractText(ctx context.Context, img image.Image) (string, error) {
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

type fakeClient struct {
	calls       atomic.Int64
	result      *models.AnalysisResult
	err         error
	ingredients string
}

func (f *fakeClient) Analyze(ctx context.Context, ingredients, productName string) (*models.AnalysisResult, error) {
	f.calls.Add(1)
	f.ingredients = ingredients
	return f.result, f.err
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) OnEvent(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) terminalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type.Terminal() {
			n++
		}
	}
	return n
}

func (r *eventRecorder) has(t EventType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

func TestScanSuccess(t *testing.T) {
	client := &fakeClient{result: &models.AnalysisResult{ProductName: "Choco Bar", FinalScore: 7}}
	recorder := &eventRecorder{}
	p := New(&fakeExtractor{text: "Ingredients: Water, Sugar"}, client, recorder)

	outcome, err := p.Scan(context.Background(), Request{Ref: writeTestImage(t), ProductName: "Choco Bar"})
	require.NoError(t, err)

	require.NoError(t, outcome.Err)
	assert.NotEmpty(t, outcome.ScanID)
	assert.Equal(t, "Ingredients: Water, Sugar", outcome.ExtractedText)
	assert.Equal(t, "WATER, SUGAR", outcome.SanitizedText)
	assert.Equal(t, "WATER, SUGAR", client.ingredients)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, 7.0, outcome.Result.FinalScore)

	assert.Equal(t, 1, recorder.terminalCount())
	assert.True(t, recorder.has(ScanCompleted))
	assert.True(t, recorder.has(TextSanitized))
}

func TestScanNoTextSkipsClient(t *testing.T) {
	client := &fakeClient{}
	recorder := &eventRecorder{}
	p := New(&fakeExtractor{text: ""}, client, recorder)

	outcome, err := p.Scan(context.Background(), Request{Ref: writeTestImage(t)})
	require.NoError(t, err)

	assert.True(t, outcome.NoText)
	assert.Nil(t, outcome.Result)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, int64(0), client.calls.Load(), "scoring must not be called without text")
	assert.Equal(t, 1, recorder.terminalCount())
	assert.True(t, recorder.has(ScanCompleted))
}

func TestScanSanitizedToNothingSkipsClient(t *testing.T) {
	// Digits and punctuation survive OCR but not the sanitizer.
	client := &fakeClient{}
	p := New(&fakeExtractor{text: "123 456 !!!"}, client)

	outcome, err := p.Scan(context.Background(), Request{Ref: writeTestImage(t)})
	require.NoError(t, err)

	assert.True(t, outcome.NoText)
	assert.Nil(t, outcome.Result)
	assert.Equal(t, int64(0), client.calls.Load())
}

func TestScanAcquisitionFailure(t *testing.T) {
	recorder := &eventRecorder{}
	p := New(&fakeExtractor{}, &fakeClient{}, recorder)

	outcome, err := p.Scan(context.Background(), Request{Ref: filepath.Join(t.TempDir(), "missing.png")})
	require.NoError(t, err)

	require.Error(t, outcome.Err)
	assert.True(t, apperrors.IsType(outcome.Err, apperrors.ErrorTypeAcquisition))
	assert.Equal(t, 1, recorder.terminalCount())
	assert.True(t, recorder.has(ScanFailed))
	assert.False(t, recorder.has(TextExtracted), "extraction must not run on a failed acquisition")
}

func TestScanExtractionFailure(t *testing.T) {
	client := &fakeClient{}
	recorder := &eventRecorder{}
	p := New(&fakeExtractor{err: apperrors.NewExtractionError("engine crashed", nil)}, client, recorder)

	outcome, err := p.Scan(context.Background(), Request{Ref: writeTestImage(t)})
	require.NoError(t, err)

	require.Error(t, outcome.Err)
	assert.True(t, apperrors.IsType(outcome.Err, apperrors.ErrorTypeExtraction))
	assert.Equal(t, int64(0), client.calls.Load())
	assert.Equal(t, 1, recorder.terminalCount())
}

func TestScanAnalysisFailure(t *testing.T) {
	client := &fakeClient{err: apperrors.NewTransportError("scoring service returned an empty body", nil)}
	recorder := &eventRecorder{}
	p := New(&fakeExtractor{text: "Water, Sugar"}, client, recorder)

	outcome, err := p.Scan(context.Background(), Request{Ref: writeTestImage(t)})
	require.NoError(t, err)

	require.Error(t, outcome.Err)
	assert.True(t, apperrors.IsType(outcome.Err, apperrors.ErrorTypeTransport))
	assert.Equal(t, int64(1), client.calls.Load(), "exactly one attempt per scan")
	assert.Equal(t, 1, recorder.terminalCount())
	assert.True(t, recorder.has(ScanFailed))
}

func TestScanInFlightGuard(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	p := New(&fakeExtractor{text: "Water", entered: entered, release: release}, &fakeClient{result: &models.AnalysisResult{}})

	ref := writeTestImage(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Scan(context.Background(), Request{Ref: ref})
	}()

	// Wait until the first scan is parked inside the extractor.
	<-entered

	_, err := p.Scan(context.Background(), Request{Ref: ref})
	assert.ErrorIs(t, err, ErrScanInFlight)

	_, err = p.ScanBatch(context.Background(), []Request{{Ref: ref}}, 1)
	assert.ErrorIs(t, err, ErrScanInFlight)

	close(release)
	<-done

	// The guard resets once the scan finishes.
	_, err = p.Scan(context.Background(), Request{Ref: ref})
	assert.NoError(t, err)
}

func TestScanBatchPreservesOrder(t *testing.T) {
	client := &fakeClient{result: &models.AnalysisResult{FinalScore: 5}}
	p := New(&fakeExtractor{text: "Water"}, client)

	refs := []Request{
		{Ref: writeTestImage(t), ProductName: "first"},
		{Ref: writeTestImage(t), ProductName: "second"},
		{Ref: writeTestImage(t), ProductName: "third"},
	}
	outcomes, err := p.ScanBatch(context.Background(), refs, 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	for i, outcome := range outcomes {
		require.NotNil(t, outcome, "outcome %d", i)
		assert.Equal(t, refs[i].Ref, outcome.Ref)
		assert.NoError(t, outcome.Err)
	}
	assert.Equal(t, int64(3), client.calls.Load())
}

func TestSubscribeReceivesLaterScans(t *testing.T) {
	p := New(&fakeExtractor{text: ""}, &fakeClient{})
	recorder := &eventRecorder{}
	p.Subscribe(recorder)

	_, err := p.Scan(context.Background(), Request{Ref: writeTestImage(t)})
	require.NoError(t, err)
	assert.True(t, recorder.has(ScanStarted))
	assert.Equal(t, 1, recorder.terminalCount())
}

package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"

	"go-nutriscan/internal/logger"
)

// EventType names a pipeline stage transition.
type EventType string

const (
	ScanStarted      EventType = "scan_started"
	ImageAcquired    EventType = "image_acquired"
	TextExtracted    EventType = "text_extracted"
	TextSanitized    EventType = "text_sanitized"
	AnalysisReceived EventType = "analysis_received"
	ScanCompleted    EventType = "scan_completed"
	ScanFailed       EventType = "scan_failed"
)

// Terminal reports whether the event ends a run. Each initiated run
// publishes exactly one terminal event.
func (t EventType) Terminal() bool {
	return t == ScanCompleted || t == ScanFailed
}

// Event describes one stage transition of a scan.
type Event struct {
	Type      EventType
	ScanID    string
	Ref       string
	Detail    string
	Err       error
	Timestamp time.Time
	Elapsed   time.Duration
}

// Observer receives pipeline events on the calling goroutine.
type Observer interface {
	OnEvent(event Event)
}

// LoggingObserver writes every event to the structured log.
type LoggingObserver struct{}

// OnEvent implements Observer.
func (LoggingObserver) OnEvent(event Event) {
	entry := logger.WithFields(logrus.Fields{
		"event":      string(event.Type),
		"scan_id":    event.ScanID,
		"ref":        event.Ref,
		"elapsed_ms": event.Elapsed.Milliseconds(),
	})
	if event.Detail != "" {
		entry = entry.WithField("detail", event.Detail)
	}

	switch {
	case event.Type == ScanFailed:
		entry.WithError(event.Err).Error("scan failed")
	case event.Type.Terminal():
		entry.Info("scan completed")
	default:
		entry.Debug("pipeline stage")
	}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(event Event) { f(event) }

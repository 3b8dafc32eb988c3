package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnauthorized = errors.New("calendar sink rejected the credentials")
	ErrInvalidEvent = errors.New("calendar sink rejected the event")
)

// EventSink creates calendar events from mapped payloads.
type EventSink interface {
	// Publish creates the event, or reports an existing duplicate without
	// creating anything when the sink de-duplicates.
	Publish(ctx context.Context, ev Event) (Receipt, error)
}

// Event is the calendar payload produced from one time entry. Timestamps are
// carried verbatim, offsets included; any conversion is the sink's business.
type Event struct {
	SourceID    string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// UID is a deterministic calendar UID derived from the source entry, so
// re-running a sync against UID-addressed sinks overwrites instead of
// duplicating.
func (e Event) UID() string {
	return fmt.Sprintf("toggl-%s@togglcal", e.SourceID)
}

// Receipt reports what Publish did.
type Receipt struct {
	EventID   string
	Duplicate bool
}

// CalendarInfo describes one calendar visible on a sink account.
type CalendarInfo struct {
	ID      string
	Summary string
	Primary bool
}

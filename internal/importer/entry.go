package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Auth and rate-limit failures are surfaced distinctly from transport errors
// so callers can report them without string matching.
var (
	ErrUnauthorized = errors.New("time source rejected the credentials")
	ErrRateLimited  = errors.New("time source rate limit exceeded")
)

// EntrySource lists time entries from a tracking service.
type EntrySource interface {
	// ListEntries returns the entries overlapping [from, to) in the order
	// the source reports them. An empty slice is a valid result.
	ListEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
	// CurrentEntry returns the running entry, or nil when nothing is tracked.
	CurrentEntry(ctx context.Context) (*TimeEntry, error)
	// StopEntry stops a running entry.
	StopEntry(ctx context.Context, id int64) error
}

// TimeEntry is one tracked block of time.
type TimeEntry struct {
	ID          int64
	Description string
	Project     string
	Tags        []string
	Billable    bool
	WorkspaceID int64
	Start       time.Time
	Stop        *time.Time
	DurationSec int64
}

// Running reports whether the entry has no stop time yet. Toggl marks running
// entries with a negative duration.
func (e TimeEntry) Running() bool {
	return e.Stop == nil || e.DurationSec < 0
}

func (e TimeEntry) Duration() time.Duration {
	if e.Running() {
		return 0
	}
	return e.Stop.Sub(e.Start)
}

// Elapsed is the running time so far, for entries without a stop time.
func (e TimeEntry) Elapsed(now time.Time) time.Duration {
	if !e.Running() {
		return e.Duration()
	}
	return now.Sub(e.Start)
}

// FormatDuration renders a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

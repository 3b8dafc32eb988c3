package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidRange marks malformed or contradictory date-range inputs. It is
// fatal for the run and reported before any collaborator call.
var ErrInvalidRange = errors.New("invalid date range")

// MappingError is the per-entry failure of converting a time entry into a
// calendar event. It never aborts a run; the entry is recorded as skipped.
type MappingError struct {
	EntryID int64
	Reason  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("entry %d cannot be mapped: %s", e.EntryID, e.Reason)
}

// FetchError wraps a failed call to the time-entry source. It is fatal for
// the run, there is nothing to process.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetching time entries failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PublishError wraps a failed create call for a single event. The run
// continues with the next entry.
type PublishError struct {
	EntryID int64
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing event for entry %d failed: %s", e.EntryID, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

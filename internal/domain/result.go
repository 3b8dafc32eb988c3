package domain

import "time"

type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeWouldCreate Outcome = "would create"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeFailed      Outcome = "failed"
)

// EntryResult is the per-entry outcome of one run, in fetch order.
type EntryResult struct {
	EntryID int64
	Title   string
	Start   time.Time
	End     time.Time
	Outcome Outcome
	Reason  string
	EventID string
}

// SyncResult accumulates per-entry outcomes during a run. It lives only for
// the duration of the run; nothing is persisted.
type SyncResult struct {
	Range   DateRange
	Preview bool
	Entries []EntryResult
}

func (r *SyncResult) add(er EntryResult) {
	r.Entries = append(r.Entries, er)
}

func (r *SyncResult) count(o Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

func (r *SyncResult) Created() int     { return r.count(OutcomeCreated) }
func (r *SyncResult) WouldCreate() int { return r.count(OutcomeWouldCreate) }
func (r *SyncResult) Skipped() int     { return r.count(OutcomeSkipped) }
func (r *SyncResult) Failed() int      { return r.count(OutcomeFailed) }

package domain

import (
	"context"
	"time"

	"togglcal/internal/exporter"
	"togglcal/internal/importer"

	"github.com/adhocore/gronx/pkg/tasker"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// UseCase runs the sync pipeline: one fetch for the whole range, then a
// sequential map+publish pass over the entries with per-entry isolation.
type UseCase struct {
	source importer.EntrySource
	sink   exporter.EventSink
	pool   *pool.ContextPool
	ctx    context.Context
}

// RunOptions are the knobs of a single run.
type RunOptions struct {
	Range   DateRange
	Preview bool
}

func New(ctx context.Context, source importer.EntrySource, sink exporter.EventSink) *UseCase {
	return &UseCase{
		source: source,
		sink:   sink,
		pool:   pool.New().WithContext(ctx).WithMaxGoroutines(1),
		ctx:    ctx,
	}
}

// SyncOnce executes one run. Per-entry mapping and publish failures are
// recorded and never abort the run; a fetch failure is fatal. On context
// cancellation the result accumulated so far is returned together with the
// context error, so callers can still report partial progress.
func (uc *UseCase) SyncOnce(ctx context.Context, opts RunOptions) (*SyncResult, error) {
	res := &SyncResult{Range: opts.Range, Preview: opts.Preview}

	from, to := opts.Range.FromTo()
	entries, err := uc.source.ListEntries(ctx, from, to)
	if err != nil {
		return res, &FetchError{Err: err}
	}
	log.Info().Int("count", len(entries)).Str("range", opts.Range.String()).Msg("fetched time entries")

	for _, entry := range entries {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.add(uc.processEntry(ctx, entry, opts.Preview))
	}
	return res, nil
}

func (uc *UseCase) processEntry(ctx context.Context, entry importer.TimeEntry, preview bool) EntryResult {
	er := EntryResult{EntryID: entry.ID, Title: entry.Description, Start: entry.Start}
	if entry.Stop != nil {
		er.End = *entry.Stop
	}

	ev, err := MapEntry(entry)
	if err != nil {
		mapErr := err.(*MappingError)
		log.Warn().Int64("entryID", entry.ID).Str("reason", mapErr.Reason).Msg("skipping entry")
		er.Outcome = OutcomeSkipped
		er.Reason = mapErr.Reason
		return er
	}
	er.Title = ev.Title

	if preview {
		er.Outcome = OutcomeWouldCreate
		return er
	}

	receipt, err := uc.sink.Publish(ctx, ev)
	if err != nil {
		pubErr := &PublishError{EntryID: entry.ID, Err: err}
		log.Err(pubErr).Int64("entryID", entry.ID).Str("title", ev.Title).Msg("error publishing event")
		er.Outcome = OutcomeFailed
		er.Reason = pubErr.Err.Error()
		return er
	}
	er.EventID = receipt.EventID
	if receipt.Duplicate {
		er.Outcome = OutcomeSkipped
		er.Reason = "already synced"
		return er
	}
	log.Info().Int64("entryID", entry.ID).Str("eventID", receipt.EventID).Str("title", ev.Title).Msg("created event")
	er.Outcome = OutcomeCreated
	return er
}

// TaskSync runs the pipeline repeatedly on a cron schedule, recomputing the
// relative range at every tick.
func (uc *UseCase) TaskSync(cronExpr string, days int, preview bool) {
	taskr := tasker.New(tasker.Option{})
	taskr.Task(cronExpr, func(ctx context.Context) (int, error) {
		rng, err := ResolveRange("", "", days, time.Now())
		if err != nil {
			return 1, err
		}
		res, err := uc.SyncOnce(ctx, RunOptions{Range: rng, Preview: preview})
		if err != nil {
			return 1, err
		}
		log.Info().
			Int("created", res.Created()).
			Int("skipped", res.Skipped()).
			Int("failed", res.Failed()).
			Msg("scheduled sync finished")
		return 0, nil
	})
	uc.pool.Go(func(_ context.Context) error {
		taskr.Run()
		return nil
	})
}

func (uc *UseCase) Stop() {
	uc.pool.Wait()
}

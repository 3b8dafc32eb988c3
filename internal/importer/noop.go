package importer

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

var _ EntrySource = (*Noop)(nil)

type Noop struct {
}

func (i *Noop) ListEntries(_ context.Context, _, _ time.Time) ([]TimeEntry, error) {
	log.Info().Msg("noop source list entries call")
	return nil, nil
}

func (i *Noop) CurrentEntry(_ context.Context) (*TimeEntry, error) {
	log.Info().Msg("noop source current entry call")
	return nil, nil
}

func (i *Noop) StopEntry(_ context.Context, _ int64) error {
	log.Info().Msg("noop source stop entry call")
	return nil
}

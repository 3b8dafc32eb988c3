package cmd

import (
	"context"
	"fmt"
	"time"

	"togglcal/internal/config"
	"togglcal/internal/domain"
	"togglcal/internal/exporter"
	"togglcal/internal/importer"
	"togglcal/internal/ui"

	"github.com/pkg/errors"
)

func syncCmd(ctx context.Context) error {
	cfg := config.Gist()
	rng, err := domain.ResolveRange(
		cfg.String(config.SYNC_START),
		cfg.String(config.SYNC_END),
		cfg.Int(config.SYNC_DAYS),
		time.Now(),
	)
	if err != nil {
		return err
	}
	preview := cfg.Bool(config.SYNC_PREVIEW)

	fmt.Println(ui.Title("syncing " + rng.String()))
	if preview {
		fmt.Println(ui.Warn("preview mode, no events will be created"))
	}

	sink, err := newSink(ctx)
	if err != nil {
		return err
	}
	useCase := domain.New(ctx, importer.NewToggl(), sink)
	res, err := useCase.SyncOnce(ctx, domain.RunOptions{Range: rng, Preview: preview})

	// A partial result still gets reported, interrupted runs included.
	if res != nil && len(res.Entries) > 0 {
		fmt.Println(ui.ReportTable(res))
		fmt.Println(ui.Summary(res))
	} else if err == nil {
		fmt.Println(ui.Warn("no time entries found"))
	}
	return err
}

// newSink picks the sink configured via --sink.
func newSink(ctx context.Context) (exporter.EventSink, error) {
	switch name := config.Gist().String(config.SINK); name {
	case "google":
		return exporter.NewGoogle(ctx)
	case "ics":
		return exporter.NewICSFile(), nil
	case "caldav":
		return exporter.NewCalDAV(), nil
	case "noop":
		return &exporter.Noop{}, nil
	default:
		return nil, errors.Errorf("unknown sink %q", name)
	}
}

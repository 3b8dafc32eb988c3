package cmd

import (
	"context"
	"time"

	"togglcal/internal/domain"
	"togglcal/internal/exporter"
	"togglcal/internal/importer"
)

func noopCmd(ctx context.Context) error {
	rng, err := domain.ResolveRange("", "", 0, time.Now())
	if err != nil {
		return err
	}
	useCase := domain.New(ctx, &importer.Noop{}, &exporter.Noop{})
	_, err = useCase.SyncOnce(ctx, domain.RunOptions{Range: rng})
	return err
}

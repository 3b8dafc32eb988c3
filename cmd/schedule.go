package cmd

import (
	"context"
	"fmt"

	"togglcal/internal/config"
	"togglcal/internal/domain"
	"togglcal/internal/importer"
	"togglcal/internal/ui"

	"github.com/rs/zerolog/log"
)

// scheduleCmd reruns the sync pipeline on a cron schedule until interrupted.
func scheduleCmd(ctx context.Context) error {
	cfg := config.Gist()
	days := cfg.Int(config.SYNC_DAYS)
	if days == 0 {
		days = 1
	}
	cronExpr := cfg.String(config.SYNC_CRON)

	sink, err := newSink(ctx)
	if err != nil {
		return err
	}

	fmt.Println(ui.Title(fmt.Sprintf("scheduled sync every %q, last %d day(s)", cronExpr, days)))
	useCase := domain.New(ctx, importer.NewToggl(), sink)
	useCase.TaskSync(cronExpr, days, cfg.Bool(config.SYNC_PREVIEW))

	<-ctx.Done()
	log.Info().Msg("shutting down scheduled sync")
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"togglcal/internal/config"
	"togglcal/internal/ui"

	"github.com/charmbracelet/huh"
)

// menuCmd is the default command: a small interactive front over the most
// common runs. Selections tweak the run config before dispatching to the
// regular command funcs.
func menuCmd(ctx context.Context) error {
	for {
		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("togglcal").
				Description("sync Toggl time entries into a calendar").
				Options(
					huh.NewOption("Sync today", "sync-today"),
					huh.NewOption("Sync the past 7 days", "sync-week"),
					huh.NewOption("Preview today (no events created)", "sync-preview"),
					huh.NewOption("Show current entry", "current"),
					huh.NewOption("List calendars", "calendars"),
					huh.NewOption("Version", "version"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&choice),
		))
		if err := form.RunWithContext(ctx); err != nil {
			return err
		}

		cfg := config.Gist()
		var err error
		switch choice {
		case "sync-today":
			cfg.Set(config.SYNC_DAYS, 0)
			cfg.Set(config.SYNC_PREVIEW, false)
			err = runValidated(ctx, "sync", syncCmd)
		case "sync-week":
			cfg.Set(config.SYNC_DAYS, 7)
			cfg.Set(config.SYNC_PREVIEW, false)
			err = runValidated(ctx, "sync", syncCmd)
		case "sync-preview":
			cfg.Set(config.SYNC_DAYS, 0)
			cfg.Set(config.SYNC_PREVIEW, true)
			err = runValidated(ctx, "sync", syncCmd)
		case "current":
			err = runValidated(ctx, "current", currentCmd)
		case "calendars":
			err = runValidated(ctx, "calendars", calendarsCmd)
		case "version":
			err = versionCmd(ctx)
		case "quit":
			return nil
		}
		if err != nil {
			fmt.Println(ui.Error(err.Error()))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func runValidated(ctx context.Context, name string, fn command) error {
	if err := config.Validate(name); err != nil {
		return err
	}
	return fn(ctx)
}

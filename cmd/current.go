package cmd

import (
	"context"
	"fmt"
	"time"

	"togglcal/internal/config"
	"togglcal/internal/importer"
	"togglcal/internal/ui"

	"github.com/charmbracelet/huh"
)

// currentCmd shows the running time entry and optionally stops it.
func currentCmd(ctx context.Context) error {
	source := importer.NewToggl()
	entry, err := source.CurrentEntry(ctx)
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Println(ui.Warn("no time entry is currently running"))
		return nil
	}

	fmt.Println(ui.Title("current time entry"))
	fmt.Println(ui.CurrentEntryTable(entry, time.Now()))

	if !config.Gist().Bool(config.CURRENT_STOP) {
		return nil
	}
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Stop the running entry?").
			Value(&confirmed),
	))
	if err := form.RunWithContext(ctx); err != nil || !confirmed {
		return err
	}
	if err := source.StopEntry(ctx, entry.ID); err != nil {
		return err
	}
	fmt.Println(ui.Title("entry stopped"))
	return nil
}

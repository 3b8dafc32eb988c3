package cmd

import (
	"context"
	"fmt"

	"togglcal/internal/ui"
)

// Version is overridable at build time via -ldflags.
var Version = "0.2.0"

func versionCmd(_ context.Context) error {
	fmt.Println(ui.Title("togglcal v" + Version))
	fmt.Println(ui.Subtitle("syncs Toggl time entries into a calendar"))
	return nil
}

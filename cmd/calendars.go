package cmd

import (
	"context"
	"fmt"

	"togglcal/internal/exporter"
	"togglcal/internal/ui"
)

// calendarsCmd lists the calendars visible to the Google account, so the
// user can pick a google.calendarid other than primary.
func calendarsCmd(ctx context.Context) error {
	sink, err := exporter.NewGoogle(ctx)
	if err != nil {
		return err
	}
	cals, err := sink.ListCalendars(ctx)
	if err != nil {
		return err
	}
	fmt.Println(ui.Title("available calendars"))
	fmt.Println(ui.CalendarTable(cals))
	return nil
}

package ui

import (
	"fmt"
	"time"

	"togglcal/internal/domain"
	"togglcal/internal/exporter"
	"togglcal/internal/importer"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorPrimary)).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
}

// ReportTable renders the per-entry outcome detail of a finished run.
func ReportTable(res *domain.SyncResult) string {
	t := newTable("OUTCOME", "ENTRY", "TITLE", "START", "DETAIL")
	for _, e := range res.Entries {
		detail := e.Reason
		if detail == "" {
			detail = e.EventID
		}
		t.Row(string(e.Outcome), fmt.Sprintf("%d", e.EntryID), e.Title, e.Start.Format(timeLayout), detail)
	}
	return t.Render()
}

// Summary renders the closing counters line of a run.
func Summary(res *domain.SyncResult) string {
	line := fmt.Sprintf("created: %d, skipped: %d, failed: %d", res.Created(), res.Skipped(), res.Failed())
	if res.Preview {
		line = fmt.Sprintf("would create: %d, skipped: %d", res.WouldCreate(), res.Skipped())
	}
	if res.Failed() > 0 {
		return errStyle.Render(">>> " + line)
	}
	return okStyle.Render(">>> " + line)
}

// CalendarTable renders the calendars visible on the sink account.
func CalendarTable(cals []exporter.CalendarInfo) string {
	t := newTable("ID", "NAME", "PRIMARY")
	for _, c := range cals {
		primary := ""
		if c.Primary {
			primary = "yes"
		}
		t.Row(c.ID, c.Summary, primary)
	}
	return t.Render()
}

// CurrentEntryTable renders the running entry shown by the current command.
func CurrentEntryTable(e *importer.TimeEntry, now time.Time) string {
	t := newTable("FIELD", "VALUE")
	desc := e.Description
	if desc == "" {
		desc = "(no description)"
	}
	t.Row("description", desc)
	t.Row("start", e.Start.Format(timeLayout))
	t.Row("elapsed", importer.FormatDuration(e.Elapsed(now)))
	if e.Project != "" {
		t.Row("project", e.Project)
	}
	if len(e.Tags) > 0 {
		t.Row("tags", fmt.Sprintf("%v", e.Tags))
	}
	billable := "no"
	if e.Billable {
		billable = "yes"
	}
	t.Row("billable", billable)
	return t.Render()
}

package domain

import (
	"strconv"
	"strings"

	"togglcal/internal/exporter"
	"togglcal/internal/importer"
)

// PlaceholderTitle is used when an entry has no description, so the calendar
// never shows an untitled event.
const PlaceholderTitle = "(no description)"

// MapEntry converts one time entry into a calendar event payload. It is a
// pure function: timestamps are copied verbatim with their offsets, and the
// only failure modes are a still-running entry and a non-positive duration.
func MapEntry(e importer.TimeEntry) (exporter.Event, error) {
	if e.Running() {
		return exporter.Event{}, &MappingError{EntryID: e.ID, Reason: "no stop time"}
	}
	if !e.Stop.After(e.Start) {
		return exporter.Event{}, &MappingError{EntryID: e.ID, Reason: "non-positive duration"}
	}

	title := e.Description
	if title == "" {
		title = PlaceholderTitle
	}
	return exporter.Event{
		SourceID:    strconv.FormatInt(e.ID, 10),
		Title:       title,
		Description: describeEntry(e),
		Start:       e.Start,
		End:         *e.Stop,
	}, nil
}

// describeEntry renders auxiliary metadata as plain text. Missing fields are
// simply left out.
func describeEntry(e importer.TimeEntry) string {
	var lines []string
	if e.Project != "" {
		lines = append(lines, "Project: "+e.Project)
	}
	if len(e.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(e.Tags, ", "))
	}
	return strings.Join(lines, "\n")
}

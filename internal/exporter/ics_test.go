package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"togglcal/internal/config"

	ics "github.com/arran4/golang-ical"
)

func newTestICSFile(t *testing.T) *ICSFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "togglcal.ics")
	config.Gist().Set(config.ICS_PATH, path)
	return NewICSFile()
}

func sampleEvent(id, title string) Event {
	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return Event{
		SourceID:    id,
		Title:       title,
		Description: "Project: Website",
		Start:       start,
		End:         start.Add(time.Hour),
	}
}

func TestICSFilePublish(t *testing.T) {
	sink := newTestICSFile(t)

	r1, err := sink.Publish(context.Background(), sampleEvent("1", "Design review"))
	if err != nil {
		t.Fatal(err)
	}
	if r1.Duplicate || r1.EventID != "toggl-1@togglcal" {
		t.Fatalf("receipt: %+v", r1)
	}
	if _, err := sink.Publish(context.Background(), sampleEvent("2", "Standup")); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(sink.path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cal, err := ics.ParseCalendar(f)
	if err != nil {
		t.Fatal(err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}

	uids := make([]string, 0, len(events))
	for _, e := range events {
		uids = append(uids, e.GetProperty(ics.ComponentPropertyUniqueId).Value)
	}
	joined := strings.Join(uids, " ")
	if !strings.Contains(joined, "toggl-1@togglcal") || !strings.Contains(joined, "toggl-2@togglcal") {
		t.Fatalf("uids: %v", uids)
	}
}

func TestICSFilePublishSameEntryTwiceIsDuplicate(t *testing.T) {
	sink := newTestICSFile(t)

	if _, err := sink.Publish(context.Background(), sampleEvent("1", "Design review")); err != nil {
		t.Fatal(err)
	}
	r, err := sink.Publish(context.Background(), sampleEvent("1", "Design review"))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Duplicate {
		t.Fatal("second publish of the same entry should be a duplicate")
	}

	f, err := os.Open(sink.path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cal, err := ics.ParseCalendar(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.Events()) != 1 {
		t.Fatalf("got %d events, want 1", len(cal.Events()))
	}
}

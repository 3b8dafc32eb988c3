package exporter

import (
	"context"
	"os"
	"sync"
	"time"

	"togglcal/internal/config"

	ics "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
)

var _ EventSink = (*ICSFile)(nil)

// ICSFile collects published events into a single iCalendar file. UIDs come
// from the source entry, so republishing the same entry replaces its VEVENT
// rather than appending a duplicate.
type ICSFile struct {
	mu   sync.Mutex
	path string
}

func NewICSFile() *ICSFile {
	return &ICSFile{path: config.Gist().String(config.ICS_PATH)}
}

func (f *ICSFile) Publish(_ context.Context, ev Event) (Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cal, err := f.load()
	if err != nil {
		return Receipt{}, err
	}

	for _, existing := range cal.Events() {
		if prop := existing.GetProperty(ics.ComponentPropertyUniqueId); prop != nil && prop.Value == ev.UID() {
			return Receipt{EventID: ev.UID(), Duplicate: true}, nil
		}
	}

	vev := cal.AddEvent(ev.UID())
	vev.SetDtStampTime(time.Now())
	vev.SetStartAt(ev.Start)
	vev.SetEndAt(ev.End)
	vev.SetSummary(ev.Title)
	if ev.Description != "" {
		vev.SetDescription(ev.Description)
	}

	out, err := os.OpenFile(f.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return Receipt{}, errors.Wrap(err, "error opening ics file")
	}
	defer out.Close()
	if err := cal.SerializeTo(out); err != nil {
		return Receipt{}, errors.Wrap(err, "error writing ics file")
	}
	return Receipt{EventID: ev.UID()}, nil
}

func (f *ICSFile) load() (*ics.Calendar, error) {
	in, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			cal := ics.NewCalendar()
			cal.SetMethod(ics.MethodPublish)
			cal.SetProductId("-//togglcal//EN")
			return cal, nil
		}
		return nil, errors.Wrap(err, "error opening ics file")
	}
	defer in.Close()
	cal, err := ics.ParseCalendar(in)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing ics file")
	}
	return cal, nil
}

package exporter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"togglcal/internal/config"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ EventSink = (*CalDAV)(nil)

// CalDAV publishes events as calendar objects on a CalDAV collection. Object
// paths are derived from the event UID, so re-publishing an entry overwrites
// its object in place.
type CalDAV struct {
	cl   *caldav.Client
	hc   *trackedClient
	base string
}

// trackedClient remembers the status of the last response so Publish can tell
// an auth rejection apart from other failures.
type trackedClient struct {
	next webdav.HTTPClient
	code int
}

func (t *trackedClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := t.next.Do(req)
	if resp != nil {
		t.code = resp.StatusCode
	}
	return resp, err
}

func NewCalDAV() *CalDAV {
	var httpClient webdav.HTTPClient = http.DefaultClient
	if config.Gist().Exists(config.CALDAV_USER) && config.Gist().Exists(config.CALDAV_PASS) {
		httpClient = webdav.HTTPClientWithBasicAuth(
			httpClient,
			config.Gist().String(config.CALDAV_USER),
			config.Gist().String(config.CALDAV_PASS),
		)
	}
	tracked := &trackedClient{next: httpClient}
	cl, err := caldav.NewClient(tracked, config.Gist().String(config.CALDAV_URL))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating caldav client")
	}
	return &CalDAV{
		cl:   cl,
		hc:   tracked,
		base: config.Gist().String(config.CALDAV_PATH),
	}
}

func (c *CalDAV) Publish(ctx context.Context, ev Event) (Receipt, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//togglcal//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")

	vev := ical.NewEvent()
	vev.Props.SetText(ical.PropUID, ev.UID())
	vev.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())
	vev.Props.SetDateTime(ical.PropDateTimeStart, ev.Start)
	vev.Props.SetDateTime(ical.PropDateTimeEnd, ev.End)
	vev.Props.SetText(ical.PropSummary, ev.Title)
	if ev.Description != "" {
		vev.Props.SetText(ical.PropDescription, ev.Description)
	}
	cal.Children = append(cal.Children, vev.Component)

	path := c.objectPath(ev)
	if _, err := c.cl.PutCalendarObject(ctx, path, cal); err != nil {
		if c.hc.code == http.StatusUnauthorized || c.hc.code == http.StatusForbidden {
			return Receipt{}, errors.Wrap(ErrUnauthorized, "error putting calendar object")
		}
		return Receipt{}, errors.Wrap(err, "error putting calendar object")
	}
	return Receipt{EventID: path}, nil
}

func (c *CalDAV) objectPath(ev Event) string {
	return strings.TrimSuffix(c.base, "/") + "/" + ev.UID() + ".ics"
}

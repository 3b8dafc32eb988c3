package exporter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"togglcal/internal/auth"
	"togglcal/internal/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var _ EventSink = (*Google)(nil)

// Extended property key that ties a created event back to its time entry.
const sourceIDProp = "togglEntryId"

// Google publishes events to a Google Calendar.
type Google struct {
	svc        *calendar.Service
	calendarID string
	dedup      bool
}

func NewGoogle(ctx context.Context) (*Google, error) {
	oauthCfg, err := auth.LoadCredentials(config.Gist().String(config.GOOGLE_CREDENTIALS))
	if err != nil {
		return nil, err
	}
	store := auth.NewFileTokenStore(config.Gist().String(config.GOOGLE_TOKEN))
	httpClient, err := auth.Client(ctx, oauthCfg, store)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, errors.Wrap(err, "error creating calendar service")
	}
	return &Google{
		svc:        svc,
		calendarID: config.Gist().String(config.GOOGLE_CALENDAR_ID),
		dedup:      config.Gist().Bool(config.SYNC_DEDUP),
	}, nil
}

// NewGoogleForService wires a sink around an already-built service, used by
// tests and by the calendars command.
func NewGoogleForService(svc *calendar.Service, calendarID string, dedup bool) *Google {
	return &Google{svc: svc, calendarID: calendarID, dedup: dedup}
}

func (g *Google) Publish(ctx context.Context, ev Event) (Receipt, error) {
	if g.dedup {
		id, err := g.findExisting(ctx, ev)
		if err != nil {
			return Receipt{}, err
		}
		if id != "" {
			log.Debug().Str("eventID", id).Str("title", ev.Title).Msg("event already synced")
			return Receipt{EventID: id, Duplicate: true}, nil
		}
	}

	item := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{sourceIDProp: ev.SourceID},
		},
	}
	created, err := g.svc.Events.Insert(g.calendarID, item).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return Receipt{}, googleError("error creating event", err)
	}
	return Receipt{EventID: created.Id}, nil
}

// findExisting looks for an event created from the same entry. The extended
// property match covers events this tool created; the summary+window fallback
// covers events created before the property was introduced.
func (g *Google) findExisting(ctx context.Context, ev Event) (string, error) {
	byProp, err := g.svc.Events.List(g.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", sourceIDProp, ev.SourceID)).
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", googleError("error searching events", err)
	}
	if len(byProp.Items) > 0 {
		return byProp.Items[0].Id, nil
	}

	inWindow, err := g.svc.Events.List(g.calendarID).
		TimeMin(ev.Start.Format(time.RFC3339)).
		TimeMax(ev.End.Format(time.RFC3339)).
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", googleError("error searching events", err)
	}
	for _, item := range inWindow.Items {
		if item.Summary == ev.Title {
			return item.Id, nil
		}
	}
	return "", nil
}

// ListCalendars returns the calendars visible to the account.
func (g *Google) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	list, err := g.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, googleError("error listing calendars", err)
	}
	out := make([]CalendarInfo, 0, len(list.Items))
	for _, item := range list.Items {
		out = append(out, CalendarInfo{
			ID:      item.Id,
			Summary: item.Summary,
			Primary: item.Primary,
		})
	}
	return out, nil
}

func googleError(msg string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Wrap(ErrUnauthorized, msg)
		case http.StatusBadRequest:
			return errors.Wrapf(ErrInvalidEvent, "%s: %s", msg, apiErr.Message)
		}
	}
	return errors.Wrap(err, msg)
}

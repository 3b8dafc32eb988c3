package exporter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// fakeCalendarAPI serves just enough of the Calendar v3 surface for the sink:
// event listing (both dedup queries) and insertion.
type fakeCalendarAPI struct {
	existingByProp   []*calendar.Event
	existingInWindow []*calendar.Event
	inserted         []*calendar.Event
	insertQuery      map[string]string
}

func (f *fakeCalendarAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			items := f.existingInWindow
			if r.URL.Query().Get("privateExtendedProperty") != "" {
				items = f.existingByProp
			}
			json.NewEncoder(w).Encode(&calendar.Events{Items: items})
		case http.MethodPost:
			var ev calendar.Event
			if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
				t.Error(err)
			}
			ev.Id = "created-1"
			f.inserted = append(f.inserted, &ev)
			f.insertQuery = map[string]string{"sendUpdates": r.URL.Query().Get("sendUpdates")}
			json.NewEncoder(w).Encode(&ev)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func newTestGoogle(t *testing.T, api *fakeCalendarAPI, dedup bool) *Google {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return NewGoogleForService(svc, "primary", dedup)
}

func TestGooglePublishInsertsEvent(t *testing.T) {
	api := &fakeCalendarAPI{}
	sink := newTestGoogle(t, api, true)

	receipt, err := sink.Publish(context.Background(), sampleEvent("1", "Design review"))
	if err != nil {
		t.Fatal(err)
	}
	if receipt.Duplicate || receipt.EventID != "created-1" {
		t.Fatalf("receipt: %+v", receipt)
	}
	if len(api.inserted) != 1 {
		t.Fatalf("inserted %d events", len(api.inserted))
	}

	ev := api.inserted[0]
	if ev.Summary != "Design review" {
		t.Errorf("summary = %q", ev.Summary)
	}
	if !strings.HasPrefix(ev.Start.DateTime, "2025-04-01T09:00:00") {
		t.Errorf("start = %q", ev.Start.DateTime)
	}
	if ev.ExtendedProperties == nil || ev.ExtendedProperties.Private[sourceIDProp] != "1" {
		t.Errorf("source id property missing: %+v", ev.ExtendedProperties)
	}
	if api.insertQuery["sendUpdates"] != "none" {
		t.Errorf("sendUpdates = %q", api.insertQuery["sendUpdates"])
	}
}

func TestGooglePublishDedupByProperty(t *testing.T) {
	api := &fakeCalendarAPI{
		existingByProp: []*calendar.Event{{Id: "existing-9"}},
	}
	sink := newTestGoogle(t, api, true)

	receipt, err := sink.Publish(context.Background(), sampleEvent("9", "Design review"))
	if err != nil {
		t.Fatal(err)
	}
	if !receipt.Duplicate || receipt.EventID != "existing-9" {
		t.Fatalf("receipt: %+v", receipt)
	}
	if len(api.inserted) != 0 {
		t.Fatal("duplicate still inserted")
	}
}

func TestGooglePublishDedupBySummaryFallback(t *testing.T) {
	api := &fakeCalendarAPI{
		existingInWindow: []*calendar.Event{
			{Id: "other", Summary: "Different meeting"},
			{Id: "match", Summary: "Design review"},
		},
	}
	sink := newTestGoogle(t, api, true)

	receipt, err := sink.Publish(context.Background(), sampleEvent("9", "Design review"))
	if err != nil {
		t.Fatal(err)
	}
	if !receipt.Duplicate || receipt.EventID != "match" {
		t.Fatalf("receipt: %+v", receipt)
	}
}

func TestGooglePublishDedupDisabled(t *testing.T) {
	api := &fakeCalendarAPI{
		existingByProp: []*calendar.Event{{Id: "existing-9"}},
	}
	sink := newTestGoogle(t, api, false)

	receipt, err := sink.Publish(context.Background(), sampleEvent("9", "Design review"))
	if err != nil {
		t.Fatal(err)
	}
	if receipt.Duplicate {
		t.Fatal("dedup disabled but duplicate reported")
	}
	if len(api.inserted) != 1 {
		t.Fatalf("inserted %d events", len(api.inserted))
	}
}

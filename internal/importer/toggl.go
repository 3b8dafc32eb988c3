package importer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"togglcal/internal/config"
	"togglcal/internal/importer/toggl"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ EntrySource = (*Toggl)(nil)

const (
	entriesPath = "/me/time_entries"
	currentPath = "/me/time_entries/current"
)

// Toggl fetches time entries from the Toggl Track API v9.
type Toggl struct {
	rc        *resty.Client
	workspace int64
}

func NewToggl() *Toggl {
	return &Toggl{
		rc: resty.New().
			SetBaseURL(config.Gist().String(config.TOGGL_URL)).
			SetBasicAuth(config.Gist().String(config.TOGGL_TOKEN), "api_token").
			SetHeader("Accept", "application/json"),
		workspace: config.Gist().Int64(config.TOGGL_WORKSPACE),
	}
}

func (t *Toggl) ListEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	var raw []toggl.TimeEntry
	resp, err := t.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetQueryParam("start_date", from.Format(time.RFC3339)).
		SetQueryParam("end_date", to.Format(time.RFC3339)).
		SetResult(&raw).
		Get(entriesPath)
	if err != nil {
		return nil, errors.Wrap(err, "error getting time entries")
	}
	if resp.IsError() {
		return nil, statusError("error getting time entries", resp)
	}

	// Project names are only worth a round trip when an entry references one.
	var projects map[int64]string
	for _, r := range raw {
		if r.ProjectID != nil {
			projects = t.projectNames(ctx)
			break
		}
	}
	out := make([]TimeEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, t.toEntry(r, projects))
	}
	return out, nil
}

func (t *Toggl) CurrentEntry(ctx context.Context) (*TimeEntry, error) {
	var raw *toggl.TimeEntry
	resp, err := t.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetResult(&raw).
		Get(currentPath)
	if err != nil {
		return nil, errors.Wrap(err, "error getting current entry")
	}
	if resp.IsError() {
		return nil, statusError("error getting current entry", resp)
	}
	// Toggl returns a JSON null when nothing is running.
	if raw == nil || raw.ID == 0 {
		return nil, nil
	}
	var projects map[int64]string
	if raw.ProjectID != nil {
		projects = t.projectNames(ctx)
	}
	entry := t.toEntry(*raw, projects)
	return &entry, nil
}

func (t *Toggl) StopEntry(ctx context.Context, id int64) error {
	if t.workspace == 0 {
		return errors.New("stopping an entry requires a workspace id")
	}
	resp, err := t.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		Patch(fmt.Sprintf("/workspaces/%d/time_entries/%d/stop", t.workspace, id))
	if err != nil {
		return errors.Wrap(err, "error stopping entry")
	}
	if resp.IsError() {
		return statusError("error stopping entry", resp)
	}
	return nil
}

// projectNames resolves project ids to names, best effort. Entries keep an
// empty project name when the lookup fails.
func (t *Toggl) projectNames(ctx context.Context) map[int64]string {
	if t.workspace == 0 {
		return nil
	}
	var raw []toggl.Project
	resp, err := t.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetResult(&raw).
		Get(fmt.Sprintf("/workspaces/%d/projects", t.workspace))
	if err != nil || resp.IsError() {
		log.Warn().Err(err).Msg("could not resolve project names")
		return nil
	}
	out := make(map[int64]string, len(raw))
	for _, p := range raw {
		out[p.ID] = p.Name
	}
	return out
}

func (t *Toggl) toEntry(r toggl.TimeEntry, projects map[int64]string) TimeEntry {
	entry := TimeEntry{
		ID:          r.ID,
		Description: r.Description,
		Tags:        r.Tags,
		Billable:    r.Billable,
		WorkspaceID: r.WorkspaceID,
		Start:       r.Start,
		DurationSec: r.Duration,
	}
	if r.Stop != nil {
		stop := *r.Stop
		entry.Stop = &stop
	}
	if r.ProjectID != nil {
		entry.Project = projects[*r.ProjectID]
	}
	return entry
}

func statusError(msg string, resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrap(ErrUnauthorized, msg)
	case http.StatusTooManyRequests:
		return errors.Wrap(ErrRateLimited, msg)
	}
	return errors.Errorf("%s: %s", msg, resp.Status())
}

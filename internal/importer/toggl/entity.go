package toggl

import "time"

// TimeEntry mirrors the Toggl Track API v9 time entry JSON.
type TimeEntry struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	ProjectID   *int64     `json:"project_id"`
	TaskID      *int64     `json:"task_id"`
	Billable    bool       `json:"billable"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	At          time.Time  `json:"at"`
}

type Project struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	ClientID    *int64    `json:"client_id"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	IsPrivate   bool      `json:"is_private"`
	Color       string    `json:"color"`
	At          time.Time `json:"at"`
}

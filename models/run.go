package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusNotFound  RunStatus = "not_found"
)

type Operation string

const (
	OpPullProperty Operation = "pull_property"
	OpPushProperty Operation = "push_property"
	OpPreviewLead  Operation = "preview_lead"
	OpImportLead   Operation = "import_lead"
	OpRetryMedia   Operation = "retry_media"
)

// MigrationRun records one pull or push against the legacy CRM.
type MigrationRun struct {
	ID         int64      `json:"id" db:"id"`
	TenantID   string     `json:"tenant_id" db:"tenant_id"`
	Operation  Operation  `json:"operation" db:"operation"`
	Target     string     `json:"target" db:"target"`
	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	FinishedAt *time.Time `json:"finished_at" db:"finished_at"`
	Status     RunStatus  `json:"status" db:"status"`
	Warnings   int        `json:"warnings" db:"warnings"`
	Error      string     `json:"error,omitempty" db:"error"`
}

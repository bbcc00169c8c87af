package models

import (
	"encoding/json"
	"time"
)

type CommandType string

const (
	CmdPullProperty CommandType = "pull_property"
	CmdPushProperty CommandType = "push_property"
	CmdImportLead   CommandType = "import_lead"
	CmdRetryMedia   CommandType = "retry_media"
)

type Command struct {
	ID          int64           `json:"id" db:"id"`
	Command     CommandType     `json:"command" db:"command"`
	Params      json.RawMessage `json:"params" db:"params"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at" db:"processed_at"`
}

type CommandParams struct {
	Tenant     string `json:"tenant,omitempty"`
	LegacyID   string `json:"legacy_id,omitempty"`
	PropertyID string `json:"property_id,omitempty"`
}

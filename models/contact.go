package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact status
const (
	ContactStatusLead = "Lead"
	ContactStatusNew  = "New"
)

// Contact is an owner or a lead. Payload carries the loosely structured legacy
// details (company, fax, requirements) that have no column of their own.
type Contact struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	TenantID  string         `json:"tenant_id" db:"tenant_id"`
	Name      string         `json:"name" db:"name"`
	Email     string         `json:"email" db:"email"`
	Phone     string         `json:"phone" db:"phone"`
	Status    string         `json:"status" db:"status"`
	Message   string         `json:"message" db:"message"`
	Payload   map[string]any `json:"payload" db:"payload"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Project is a named development grouping several properties.
type Project struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      string    `json:"tenant_id" db:"tenant_id"`
	Name          string    `json:"name" db:"name"`
	DeveloperName string    `json:"developer_name" db:"developer_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Credentials are the legacy CRM login of one tenant.
type Credentials struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"-"`
}

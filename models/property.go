package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a canonical listing. Attributes holds every mapped field keyed by
// its canonical name; the typed columns are the ones the store filters on.
type Property struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	TenantID   string         `json:"tenant_id" db:"tenant_id"`
	LegacyID   string         `json:"legacy_id" db:"legacy_id"`
	Reference  string         `json:"reference" db:"reference"`
	Title      string         `json:"title" db:"title"`
	Status     string         `json:"status" db:"status"`
	Goal       string         `json:"goal" db:"goal"`
	Type       string         `json:"type" db:"type"`
	Price      *float64       `json:"price" db:"price"`
	OwnerID    *uuid.UUID     `json:"owner_id" db:"owner_id"`
	ProjectID  *uuid.UUID     `json:"project_id" db:"project_id"`
	Attributes map[string]any `json:"attributes" db:"attributes"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// Media status
const (
	MediaStatusUploaded = "uploaded"
	MediaStatusFallback = "fallback"
	MediaStatusExternal = "external"
)

// MediaAsset is one image of a property. DeliveryURL falls back to SourceURL
// when the upload failed, in which case AssetID is empty.
type MediaAsset struct {
	ID          int64     `json:"id" db:"id"`
	PropertyID  uuid.UUID `json:"property_id" db:"property_id"`
	Ordinal     int       `json:"ordinal" db:"ordinal"`
	SourceURL   string    `json:"source_url" db:"source_url"`
	DeliveryURL string    `json:"delivery_url" db:"delivery_url"`
	AssetID     string    `json:"asset_id,omitempty" db:"asset_id"`
	ContentHash string    `json:"content_hash,omitempty" db:"content_hash"`
	SizeBytes   int64     `json:"size_bytes,omitempty" db:"size_bytes"`
	Status      string    `json:"status" db:"status"`
	Attempts    int       `json:"attempts" db:"attempts"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Migrated reports whether the asset lives on the delivery store.
func (m MediaAsset) Migrated() bool {
	return m.AssetID != "" || m.Status == MediaStatusExternal
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"crm_bridge/mapping"
	"crm_bridge/models"
)

type PropertyStore interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	FindPropertyByLegacyID(ctx context.Context, tenantID, legacyID string) (*models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, p *models.Property) error
	ReplacePropertyMedia(ctx context.Context, propertyID uuid.UUID, assets []models.MediaAsset) error
	ListPropertyMedia(ctx context.Context, propertyID uuid.UUID) ([]models.MediaAsset, error)
	GetContact(ctx context.Context, id uuid.UUID) (*models.Contact, error)
}

// PropertyService persists pulled records and loads records for push.
type PropertyService struct {
	store PropertyStore
	now   func() time.Time
}

func NewPropertyService(store PropertyStore) *PropertyService {
	return &PropertyService{store: store, now: time.Now}
}

// SaveResult is the outcome of storing a pulled property.
type SaveResult struct {
	PropertyID uuid.UUID
	Created    bool
}

// SavePulled stores rec as the canonical copy of a legacy property. Pulling
// the same legacy id again updates the existing row and replaces its media.
func (s *PropertyService) SavePulled(ctx context.Context, tenantID, legacyID string, rec mapping.Record, media []models.MediaAsset) (*SaveResult, error) {
	now := s.now()

	existing, err := s.store.FindPropertyByLegacyID(ctx, tenantID, legacyID)
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}

	p := propertyFromRecord(rec)
	p.TenantID = tenantID
	p.LegacyID = legacyID
	p.UpdatedAt = now

	res := &SaveResult{}
	if existing == nil {
		p.ID = uuid.New()
		p.CreatedAt = now
		if err := s.store.CreateProperty(ctx, p); err != nil {
			return nil, fmt.Errorf("create property: %w", err)
		}
		res.Created = true
	} else {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		if err := s.store.UpdateProperty(ctx, p); err != nil {
			return nil, fmt.Errorf("update property: %w", err)
		}
	}
	res.PropertyID = p.ID

	for i := range media {
		media[i].PropertyID = p.ID
	}
	if err := s.store.ReplacePropertyMedia(ctx, p.ID, media); err != nil {
		return nil, fmt.Errorf("save media: %w", err)
	}

	log.Printf("[pull] Stored property %s (legacy %s, created=%v, %d images)", p.ID, legacyID, res.Created, len(media))
	return res, nil
}

// LoadForPush returns the record to write and the delivery URLs of its
// images in ordinal order. A missing property returns nil.
func (s *PropertyService) LoadForPush(ctx context.Context, id uuid.UUID) (mapping.Record, []string, error) {
	p, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get property: %w", err)
	}
	if p == nil {
		return nil, nil, nil
	}

	media, err := s.store.ListPropertyMedia(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list media: %w", err)
	}
	images := make([]string, 0, len(media))
	for _, m := range media {
		images = append(images, m.DeliveryURL)
	}

	rec := RecordFromProperty(p)
	if p.OwnerID != nil {
		owner, err := s.store.GetContact(ctx, *p.OwnerID)
		if err != nil {
			return nil, nil, fmt.Errorf("get owner contact: %w", err)
		}
		if owner != nil {
			overlayOwner(rec, owner)
		}
	}
	return rec, images, nil
}

// overlayOwner writes the linked contact's identity over the owner fields
// stored with the property. Empty contact fields leave the record as is.
func overlayOwner(rec mapping.Record, owner *models.Contact) {
	for field, v := range map[string]string{
		"ownerName":  owner.Name,
		"ownerEmail": owner.Email,
		"ownerPhone": owner.Phone,
	} {
		if v != "" {
			rec[field] = v
		}
	}
}

func propertyFromRecord(rec mapping.Record) *models.Property {
	p := &models.Property{
		Reference:  rec.String("reference"),
		Title:      rec.String("title"),
		Status:     rec.String("status"),
		Goal:       rec.String("goal"),
		Type:       rec.String("type"),
		OwnerID:    parseID(rec.String("ownerContactId")),
		ProjectID:  parseID(rec.String("projectId")),
		Attributes: make(map[string]any, len(rec)),
	}
	if price, ok := rec["price"].(float64); ok {
		p.Price = &price
	}
	for k, v := range rec {
		p.Attributes[k] = v
	}
	return p
}

// RecordFromProperty rebuilds a mapping record, with the typed columns taking
// precedence over attributes.
func RecordFromProperty(p *models.Property) mapping.Record {
	rec := make(mapping.Record, len(p.Attributes)+8)
	for k, v := range p.Attributes {
		rec[k] = v
	}
	set := func(field, v string) {
		if v != "" {
			rec[field] = v
		}
	}
	set("reference", p.Reference)
	set("title", p.Title)
	set("status", p.Status)
	set("goal", p.Goal)
	set("type", p.Type)
	if p.Price != nil {
		rec["price"] = *p.Price
	}
	return rec
}

func parseID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"crm_bridge/identity"
	"crm_bridge/mapping"
	"crm_bridge/models"
	"crm_bridge/storage"
)

// ContactStore is the contact half of the canonical store.
type ContactStore interface {
	GetContact(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	FindContactByField(ctx context.Context, tenantID string, field storage.ContactField, value string) (*models.Contact, error)
	CreateContact(ctx context.Context, c *models.Contact) error
	UpdateContact(ctx context.Context, c *models.Contact) error
}

const minImportedNoteLen = 20

// ownerPayloadFields maps owner record fields to contact payload keys.
var ownerPayloadFields = []struct{ field, key string }{
	{"ownerCompany", "company"},
	{"ownerFax", "fax"},
	{"ownerBirthday", "birthday"},
	{"ownerWebsite", "website"},
	{"ownerAddress", "address"},
	{"ownerViewingNotification", "viewingNotification"},
	{"ownerNotes", "notes"},
}

// ContactService finds, creates and merges contacts.
type ContactService struct {
	store ContactStore
	now   func() time.Time
}

func NewContactService(store ContactStore) *ContactService {
	return &ContactService{store: store, now: time.Now}
}

type lookupKey struct {
	field storage.ContactField
	value string
}

// Lookup returns the first contact matching, in order, email, phone or name.
// Extra phones are tried after c.Phone and before the name. Empty keys are
// skipped.
func (s *ContactService) Lookup(ctx context.Context, tenantID string, c models.Contact, phones ...string) (*models.Contact, error) {
	keys := []lookupKey{{storage.ContactByEmail, c.Email}, {storage.ContactByPhone, c.Phone}}
	for _, p := range phones {
		if p != c.Phone {
			keys = append(keys, lookupKey{storage.ContactByPhone, p})
		}
	}
	keys = append(keys, lookupKey{storage.ContactByName, c.Name})

	for _, k := range keys {
		if k.value == "" {
			continue
		}
		existing, err := s.store.FindContactByField(ctx, tenantID, k.field, k.value)
		if err != nil {
			return nil, fmt.Errorf("find contact by %s: %w", k.field, err)
		}
		if existing != nil {
			return existing, nil
		}
	}
	return nil, nil
}

// Upsert merges incoming into an existing contact or creates it. It reports
// whether a new contact was created.
func (s *ContactService) Upsert(ctx context.Context, existing *models.Contact, incoming models.Contact) (uuid.UUID, bool, error) {
	now := s.now()
	if existing == nil {
		incoming.ID = uuid.New()
		incoming.CreatedAt = now
		incoming.UpdatedAt = now
		if incoming.Payload == nil {
			incoming.Payload = map[string]any{}
		}
		if err := s.store.CreateContact(ctx, &incoming); err != nil {
			return uuid.Nil, false, fmt.Errorf("create contact: %w", err)
		}
		return incoming.ID, true, nil
	}

	if MergeContact(existing, incoming) {
		existing.UpdatedAt = now
		if err := s.store.UpdateContact(ctx, existing); err != nil {
			return uuid.Nil, false, fmt.Errorf("update contact: %w", err)
		}
	}
	return existing.ID, false, nil
}

// LinkOwner resolves the owner described by rec to a contact id, creating the
// contact when none matches. A record without any owner identity yields nil.
func (s *ContactService) LinkOwner(ctx context.Context, tenantID string, rec mapping.Record) (*uuid.UUID, error) {
	owner := OwnerContact(tenantID, rec)
	if owner.Name == "" && owner.Email == "" && owner.Phone == "" {
		return nil, nil
	}

	phones := identity.PhoneCandidates(rec.String("ownerMobile"), rec.String("ownerPhone"))
	existing, err := s.Lookup(ctx, tenantID, owner, phones...)
	if err != nil {
		return nil, err
	}
	id, created, err := s.Upsert(ctx, existing, owner)
	if err != nil {
		return nil, err
	}
	if created {
		log.Printf("[pull] Created owner contact %s (%s)", id, owner.Name)
	} else {
		log.Printf("[pull] Linked existing owner contact %s", id)
	}
	return &id, nil
}

// OwnerContact builds a Lead contact from the owner fields of a property
// record.
func OwnerContact(tenantID string, rec mapping.Record) models.Contact {
	c := models.Contact{
		TenantID: tenantID,
		Name:     identity.NormalizeName(rec.String("ownerName")),
		Email:    identity.NormalizeEmail(rec.String("ownerEmail")),
		Phone:    identity.PreferredPhone(rec.String("ownerMobile"), rec.String("ownerPhone")),
		Status:   models.ContactStatusLead,
		Payload:  map[string]any{},
	}
	for _, f := range ownerPayloadFields {
		if v := strings.TrimSpace(rec.String(f.field)); v != "" {
			c.Payload[f.key] = v
		}
	}

	note := fmt.Sprintf("Imported from CRM. \nCompany: %s\nNotes: %s",
		rec.String("ownerCompany"), strings.TrimSpace(rec.String("ownerNotes")))
	if len(note) > minImportedNoteLen {
		c.Message = note
	}
	return c
}

// MergeContact fills fields of existing that are empty from incoming. Values
// already present are never overwritten. It reports whether anything changed.
func MergeContact(existing *models.Contact, incoming models.Contact) bool {
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fill(&existing.Name, incoming.Name)
	fill(&existing.Email, incoming.Email)
	fill(&existing.Phone, incoming.Phone)
	fill(&existing.Status, incoming.Status)
	fill(&existing.Message, incoming.Message)

	for k, v := range incoming.Payload {
		if isEmptyValue(v) {
			continue
		}
		if cur, ok := existing.Payload[k]; ok && !isEmptyValue(cur) {
			continue
		}
		if existing.Payload == nil {
			existing.Payload = map[string]any{}
		}
		existing.Payload[k] = v
		changed = true
	}
	return changed
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

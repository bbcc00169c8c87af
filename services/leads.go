package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"crm_bridge/identity"
	"crm_bridge/mapping"
	"crm_bridge/models"
	"crm_bridge/storage"
)

const (
	LeadActionCreated = "created"
	LeadActionUpdated = "updated"
)

// leadContactFields are stored as contact columns rather than payload.
var leadContactFields = map[string]bool{"name": true, "email": true, "phone": true, "payload": true}

// LeadService turns extracted leads into contacts.
type LeadService struct {
	contacts *ContactService
}

func NewLeadService(contacts *ContactService) *LeadService {
	return &LeadService{contacts: contacts}
}

// LeadCommit is the outcome of importing a lead.
type LeadCommit struct {
	Action string
	ID     uuid.UUID
}

// FindDuplicate returns the contact a lead would merge into: same email, or
// failing that same phone, within the tenant.
func (s *LeadService) FindDuplicate(ctx context.Context, tenantID string, rec mapping.Record) (*models.Contact, error) {
	c := LeadContact(tenantID, rec)
	var byEmail *models.Contact
	var err error
	if c.Email != "" {
		byEmail, err = s.contacts.store.FindContactByField(ctx, tenantID, storage.ContactByEmail, c.Email)
		if err != nil {
			return nil, fmt.Errorf("find lead by email: %w", err)
		}
	}
	if byEmail != nil || c.Phone == "" {
		return byEmail, nil
	}
	byPhone, err := s.contacts.store.FindContactByField(ctx, tenantID, storage.ContactByPhone, c.Phone)
	if err != nil {
		return nil, fmt.Errorf("find lead by phone: %w", err)
	}
	return byPhone, nil
}

// Commit creates the lead's contact, or merges it non-destructively into the
// duplicate.
func (s *LeadService) Commit(ctx context.Context, tenantID string, rec mapping.Record) (*LeadCommit, error) {
	existing, err := s.FindDuplicate(ctx, tenantID, rec)
	if err != nil {
		return nil, err
	}

	id, created, err := s.contacts.Upsert(ctx, existing, LeadContact(tenantID, rec))
	if err != nil {
		return nil, err
	}

	res := &LeadCommit{ID: id, Action: LeadActionUpdated}
	if created {
		res.Action = LeadActionCreated
	}
	log.Printf("[lead] Lead %s as contact %s", res.Action, id)
	return res, nil
}

// LeadContact maps an extracted lead to a contact. Everything that is not a
// contact column lands in the payload, including the import payload.
func LeadContact(tenantID string, rec mapping.Record) models.Contact {
	c := models.Contact{
		TenantID: tenantID,
		Name:     identity.NormalizeName(rec.String("name")),
		Email:    identity.NormalizeEmail(rec.String("email")),
		Phone:    identity.NormalizePhone(rec.String("phone")),
		Status:   rec.String("requirementStatus"),
		Payload:  map[string]any{},
	}
	if c.Status == "" {
		c.Status = models.ContactStatusNew
	}

	for k, v := range rec {
		if leadContactFields[k] || isEmptyValue(v) {
			continue
		}
		c.Payload[k] = v
	}
	if extra, ok := rec["payload"].(map[string]any); ok {
		for k, v := range extra {
			c.Payload[k] = v
		}
	}
	return c
}

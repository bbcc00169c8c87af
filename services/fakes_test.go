package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"crm_bridge/models"
	"crm_bridge/storage"
)

type memStore struct {
	contacts   []*models.Contact
	projects   []*models.Project
	properties map[uuid.UUID]*models.Property
	media      map[uuid.UUID][]models.MediaAsset

	created, updated int
}

func newMemStore() *memStore {
	return &memStore{
		properties: make(map[uuid.UUID]*models.Property),
		media:      make(map[uuid.UUID][]models.MediaAsset),
	}
}

func (m *memStore) GetContact(_ context.Context, id uuid.UUID) (*models.Contact, error) {
	for _, c := range m.contacts {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindContactByField(_ context.Context, tenantID string, field storage.ContactField, value string) (*models.Contact, error) {
	for _, c := range m.contacts {
		if c.TenantID != tenantID {
			continue
		}
		var got string
		switch field {
		case storage.ContactByEmail:
			got = c.Email
		case storage.ContactByPhone:
			got = c.Phone
		case storage.ContactByName:
			got = c.Name
		}
		if got != "" && strings.EqualFold(got, value) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateContact(_ context.Context, c *models.Contact) error {
	cp := *c
	m.contacts = append(m.contacts, &cp)
	m.created++
	return nil
}

func (m *memStore) UpdateContact(_ context.Context, c *models.Contact) error {
	for i, existing := range m.contacts {
		if existing.ID == c.ID {
			cp := *c
			m.contacts[i] = &cp
		}
	}
	m.updated++
	return nil
}

func (m *memStore) FindProjectByName(_ context.Context, tenantID, name string) (*models.Project, error) {
	for _, p := range m.projects {
		if p.TenantID == tenantID && strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateProject(_ context.Context, p *models.Project) error {
	m.projects = append(m.projects, p)
	return nil
}

func (m *memStore) GetProperty(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return m.properties[id], nil
}

func (m *memStore) FindPropertyByLegacyID(_ context.Context, tenantID, legacyID string) (*models.Property, error) {
	for _, p := range m.properties {
		if p.TenantID == tenantID && p.LegacyID == legacyID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateProperty(_ context.Context, p *models.Property) error {
	m.properties[p.ID] = p
	return nil
}

func (m *memStore) UpdateProperty(_ context.Context, p *models.Property) error {
	m.properties[p.ID] = p
	return nil
}

func (m *memStore) ReplacePropertyMedia(_ context.Context, id uuid.UUID, assets []models.MediaAsset) error {
	m.media[id] = append([]models.MediaAsset(nil), assets...)
	return nil
}

func (m *memStore) ListPropertyMedia(_ context.Context, id uuid.UUID) ([]models.MediaAsset, error) {
	return m.media[id], nil
}

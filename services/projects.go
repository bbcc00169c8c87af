package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"crm_bridge/mapping"
	"crm_bridge/models"
)

type ProjectStore interface {
	FindProjectByName(ctx context.Context, tenantID, name string) (*models.Project, error)
	CreateProject(ctx context.Context, p *models.Project) error
}

// ProjectService finds or creates development projects by name.
type ProjectService struct {
	store ProjectStore
	now   func() time.Time
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store, now: time.Now}
}

func (s *ProjectService) LinkProject(ctx context.Context, tenantID string, rec mapping.Record) (*uuid.UUID, error) {
	name := strings.TrimSpace(rec.String("projectName"))
	if name == "" {
		return nil, nil
	}

	existing, err := s.store.FindProjectByName(ctx, tenantID, name)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if existing != nil {
		return &existing.ID, nil
	}

	p := &models.Project{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          name,
		DeveloperName: strings.TrimSpace(rec.String("developerName")),
		CreatedAt:     s.now(),
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	log.Printf("[pull] Created project %s (%s)", p.ID, name)
	return &p.ID, nil
}

// Linker resolves the owner and project of a pulled property.
type Linker struct {
	*ContactService
	*ProjectService
}

func NewLinker(contacts *ContactService, projects *ProjectService) *Linker {
	return &Linker{ContactService: contacts, ProjectService: projects}
}

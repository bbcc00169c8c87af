package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm_bridge/models"
)

// PostgresStore is the canonical record store: properties, contacts,
// projects and property media.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the tables the bridge reads and writes when they do
// not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		developer_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS properties (
		id UUID PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		legacy_id TEXT NOT NULL DEFAULT '',
		reference TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		goal TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION,
		owner_id UUID REFERENCES contacts(id),
		project_id UUID REFERENCES projects(id),
		attributes JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS property_media (
		id BIGSERIAL PRIMARY KEY,
		property_id UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		ordinal INTEGER NOT NULL,
		source_url TEXT NOT NULL,
		delivery_url TEXT NOT NULL,
		asset_id TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		size_bytes BIGINT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (property_id, ordinal)
	);

	CREATE INDEX IF NOT EXISTS idx_properties_legacy ON properties(tenant_id, legacy_id);
	CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(tenant_id, lower(email));
	CREATE INDEX IF NOT EXISTS idx_contacts_phone ON contacts(tenant_id, phone);
	CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(tenant_id, lower(name));
	CREATE INDEX IF NOT EXISTS idx_media_status ON property_media(status, attempts);
	`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// =============================================================================
// Properties
// =============================================================================

const propertyColumns = `id, tenant_id, legacy_id, reference, title, status, goal, type, price,
	owner_id, project_id, attributes, created_at, updated_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.TenantID, &p.LegacyID, &p.Reference, &p.Title, &p.Status, &p.Goal, &p.Type, &p.Price,
		&p.OwnerID, &p.ProjectID, &p.Attributes, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresStore) FindPropertyByLegacyID(ctx context.Context, tenantID, legacyID string) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE tenant_id = $1 AND legacy_id = $2
		ORDER BY created_at DESC LIMIT 1`
	return scanProperty(s.pool.QueryRow(ctx, query, tenantID, legacyID))
}

func (s *PostgresStore) CreateProperty(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.pool.Exec(ctx, query,
		p.ID, p.TenantID, p.LegacyID, p.Reference, p.Title, p.Status, p.Goal, p.Type, p.Price,
		p.OwnerID, p.ProjectID, p.Attributes, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	query := `
		UPDATE properties SET
			legacy_id = $2, reference = $3, title = $4, status = $5, goal = $6, type = $7,
			price = $8, owner_id = $9, project_id = $10, attributes = $11, updated_at = NOW()
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query,
		p.ID, p.LegacyID, p.Reference, p.Title, p.Status, p.Goal, p.Type,
		p.Price, p.OwnerID, p.ProjectID, p.Attributes,
	)
	return err
}

// =============================================================================
// Contacts
// =============================================================================

// ContactField is a column contacts can be looked up by.
type ContactField string

const (
	ContactByEmail ContactField = "email"
	ContactByPhone ContactField = "phone"
	ContactByName  ContactField = "name"
)

const contactColumns = `id, tenant_id, name, email, phone, status, message, payload, created_at, updated_at`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.Message, &c.Payload,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) GetContact(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(s.pool.QueryRow(ctx, query, id))
}

// FindContactByField returns the oldest contact of the tenant whose field
// matches value. Email and name compare case-insensitively.
func (s *PostgresStore) FindContactByField(ctx context.Context, tenantID string, field ContactField, value string) (*models.Contact, error) {
	var where string
	switch field {
	case ContactByEmail:
		where = `lower(email) = lower($2)`
	case ContactByName:
		where = `lower(name) = lower($2)`
	case ContactByPhone:
		where = `phone = $2`
	default:
		return nil, fmt.Errorf("unsupported contact field %q", field)
	}

	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE tenant_id = $1 AND ` + where + `
		ORDER BY created_at LIMIT 1`
	return scanContact(s.pool.QueryRow(ctx, query, tenantID, value))
}

func (s *PostgresStore) CreateContact(ctx context.Context, c *models.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.pool.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.Status, c.Message, c.Payload,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) UpdateContact(ctx context.Context, c *models.Contact) error {
	query := `
		UPDATE contacts SET
			name = $2, email = $3, phone = $4, status = $5, message = $6, payload = $7, updated_at = NOW()
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Status, c.Message, c.Payload)
	return err
}

// =============================================================================
// Projects
// =============================================================================

func (s *PostgresStore) FindProjectByName(ctx context.Context, tenantID, name string) (*models.Project, error) {
	query := `
		SELECT id, tenant_id, name, developer_name, created_at
		FROM projects WHERE tenant_id = $1 AND lower(name) = lower($2)
		ORDER BY created_at LIMIT 1`

	var p models.Project
	err := s.pool.QueryRow(ctx, query, tenantID, name).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.DeveloperName, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *models.Project) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO projects (id, tenant_id, name, developer_name, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.TenantID, p.Name, p.DeveloperName, p.CreatedAt)
	return err
}

// =============================================================================
// Media
// =============================================================================

const mediaColumns = `id, property_id, ordinal, source_url, delivery_url, asset_id, content_hash,
	size_bytes, status, attempts, updated_at`

func scanMediaRows(rows pgx.Rows) ([]models.MediaAsset, error) {
	defer rows.Close()

	var media []models.MediaAsset
	for rows.Next() {
		var m models.MediaAsset
		if err := rows.Scan(
			&m.ID, &m.PropertyID, &m.Ordinal, &m.SourceURL, &m.DeliveryURL, &m.AssetID, &m.ContentHash,
			&m.SizeBytes, &m.Status, &m.Attempts, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// ReplacePropertyMedia swaps the media list of a property in one transaction.
func (s *PostgresStore) ReplacePropertyMedia(ctx context.Context, propertyID uuid.UUID, assets []models.MediaAsset) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM property_media WHERE property_id = $1`, propertyID); err != nil {
		return fmt.Errorf("clear media: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range assets {
		batch.Queue(`
			INSERT INTO property_media (property_id, ordinal, source_url, delivery_url, asset_id,
				content_hash, size_bytes, status, attempts, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
			propertyID, a.Ordinal, a.SourceURL, a.DeliveryURL, a.AssetID,
			a.ContentHash, a.SizeBytes, a.Status, a.Attempts)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert media: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) ListPropertyMedia(ctx context.Context, propertyID uuid.UUID) ([]models.MediaAsset, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+mediaColumns+` FROM property_media
		WHERE property_id = $1 ORDER BY ordinal`, propertyID)
	if err != nil {
		return nil, err
	}
	return scanMediaRows(rows)
}

// FallbackMedia returns assets still served from their source URL that have
// been retried fewer than maxAttempts times.
func (s *PostgresStore) FallbackMedia(ctx context.Context, maxAttempts, limit int) ([]models.MediaAsset, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+mediaColumns+` FROM property_media
		WHERE status = $1 AND attempts < $2
		ORDER BY updated_at LIMIT $3`, models.MediaStatusFallback, maxAttempts, limit)
	if err != nil {
		return nil, err
	}
	return scanMediaRows(rows)
}

func (s *PostgresStore) UpdateMedia(ctx context.Context, m *models.MediaAsset) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE property_media SET
			delivery_url = $2, asset_id = $3, content_hash = $4, size_bytes = $5,
			status = $6, attempts = $7, updated_at = $8
		WHERE id = $1`,
		m.ID, m.DeliveryURL, m.AssetID, m.ContentHash, m.SizeBytes, m.Status, m.Attempts, m.UpdatedAt)
	return err
}

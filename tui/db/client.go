package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// ErrNoCanonicalStore is returned by queries that need Postgres when the
// console was started without DATABASE_URL.
var ErrNoCanonicalStore = errors.New("DATABASE_URL not set")

type Client struct {
	pg     *pgxpool.Pool // optional
	sqlite *sql.DB       // runs, logs and the daemon's command queue
	ctx    context.Context
}

type TenantStats struct {
	TenantID      string
	LastRunAt     *time.Time
	LastRunStatus *string
	TotalRuns     int
	SuccessRate   float64
	Warnings      int
}

type Run struct {
	ID         int64
	TenantID   string
	Operation  string
	Target     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
	Warnings   int
	Error      string
}

type RunLog struct {
	ID        int64
	RunID     *int64
	Timestamp time.Time
	Level     string
	Message   string
	TenantID  string
}

type Property struct {
	ID         string
	TenantID   string
	LegacyID   string
	Reference  string
	Title      string
	Type       string
	Status     string
	Price      float64
	MediaCount int
	Fallbacks  int
	UpdatedAt  time.Time
}

type Media struct {
	Ordinal     int
	SourceURL   string
	DeliveryURL string
	Status      string
	Attempts    int
}

func New(postgresURL, sqlitePath string) (*Client, error) {
	ctx := context.Background()

	sqliteDB, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, err
	}

	c := &Client{sqlite: sqliteDB, ctx: ctx}
	if postgresURL != "" {
		pgPool, err := pgxpool.New(ctx, postgresURL)
		if err != nil {
			sqliteDB.Close()
			return nil, err
		}
		c.pg = pgPool
	}
	return c, nil
}

func (c *Client) Close() error {
	if c.pg != nil {
		c.pg.Close()
	}
	return c.sqlite.Close()
}

// HasCanonicalStore reports whether Postgres-backed views have data to show.
func (c *Client) HasCanonicalStore() bool {
	return c.pg != nil
}

// =============================================================================
// Operational store (SQLite)
// =============================================================================

func (c *Client) GetTenantStats() ([]TenantStats, error) {
	rows, err := c.sqlite.Query(`
		SELECT
			r.tenant_id,
			(SELECT started_at FROM migration_runs WHERE tenant_id = r.tenant_id ORDER BY started_at DESC, id DESC LIMIT 1),
			(SELECT status FROM migration_runs WHERE tenant_id = r.tenant_id ORDER BY started_at DESC, id DESC LIMIT 1),
			COUNT(*),
			COALESCE(SUM(CASE WHEN r.status = 'completed' THEN 1 ELSE 0 END) * 1.0 / NULLIF(SUM(CASE WHEN r.status != 'running' THEN 1 ELSE 0 END), 0), 0),
			COALESCE(SUM(r.warnings), 0)
		FROM migration_runs r
		WHERE COALESCE(r.tenant_id, '') != ''
		GROUP BY r.tenant_id
		ORDER BY r.tenant_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []TenantStats
	for rows.Next() {
		var s TenantStats
		var lastRunAt, status sql.NullString
		if err := rows.Scan(&s.TenantID, &lastRunAt, &status, &s.TotalRuns, &s.SuccessRate, &s.Warnings); err != nil {
			return nil, err
		}
		if lastRunAt.Valid {
			t := parseTime(lastRunAt.String)
			s.LastRunAt = &t
		}
		if status.Valid {
			s.LastRunStatus = &status.String
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (c *Client) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := c.sqlite.Query(`
		SELECT id, COALESCE(tenant_id, ''), COALESCE(operation, ''), COALESCE(target, ''),
			started_at, finished_at, COALESCE(status, ''), COALESCE(warnings, 0), COALESCE(error, '')
		FROM migration_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		var finished sql.NullString
		err := rows.Scan(&r.ID, &r.TenantID, &r.Operation, &r.Target,
			&started, &finished, &r.Status, &r.Warnings, &r.Error)
		if err != nil {
			return nil, err
		}
		r.StartedAt = parseTime(started)
		if finished.Valid {
			t := parseTime(finished.String)
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (c *Client) GetPendingCommandCount() (int, error) {
	var count int
	err := c.sqlite.QueryRow("SELECT COUNT(*) FROM commands WHERE processed_at IS NULL").Scan(&count)
	return count, err
}

func (c *Client) GetRecentLogs(limit int, level *string) ([]RunLog, error) {
	var rows *sql.Rows
	var err error

	if level != nil && *level != "ALL" {
		rows, err = c.sqlite.Query(`
			SELECT id, run_id, timestamp, level, message, COALESCE(tenant_id, '')
			FROM migration_logs
			WHERE UPPER(level) = UPPER(?)
			ORDER BY timestamp DESC, id DESC
			LIMIT ?
		`, *level, limit)
	} else {
		rows, err = c.sqlite.Query(`
			SELECT id, run_id, timestamp, level, message, COALESCE(tenant_id, '')
			FROM migration_logs
			ORDER BY timestamp DESC, id DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []RunLog
	for rows.Next() {
		var l RunLog
		var ts string
		if err := rows.Scan(&l.ID, &l.RunID, &ts, &l.Level, &l.Message, &l.TenantID); err != nil {
			return nil, err
		}
		l.Timestamp = parseTime(ts)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// SendCommand queues a command for the daemon, which polls the same table.
func (c *Client) SendCommand(command string, params map[string]string) error {
	if params == nil {
		params = map[string]string{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	_, err = c.sqlite.Exec(`
		INSERT INTO commands (command, params, created_at)
		VALUES (?, ?, ?)
	`, command, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (c *Client) RetryMedia() error {
	return c.SendCommand("retry_media", nil)
}

func (c *Client) PullProperty(tenantID, legacyID string) error {
	return c.SendCommand("pull_property", map[string]string{"tenant": tenantID, "legacy_id": legacyID})
}

func (c *Client) PushProperty(tenantID, propertyID string) error {
	return c.SendCommand("push_property", map[string]string{"tenant": tenantID, "property_id": propertyID})
}

// =============================================================================
// Canonical store (Postgres)
// =============================================================================

func (c *Client) GetProperties(limit, offset int, fallbackOnly bool) ([]Property, error) {
	if c.pg == nil {
		return nil, ErrNoCanonicalStore
	}
	query := `
		SELECT
			p.id::text,
			p.tenant_id,
			p.legacy_id,
			p.reference,
			p.title,
			p.type,
			p.status,
			COALESCE(p.price, 0),
			(SELECT COUNT(*) FROM property_media m WHERE m.property_id = p.id)::int,
			(SELECT COUNT(*) FROM property_media m WHERE m.property_id = p.id AND m.status = 'fallback')::int,
			p.updated_at
		FROM properties p
	`
	if fallbackOnly {
		query += ` WHERE EXISTS (SELECT 1 FROM property_media m WHERE m.property_id = p.id AND m.status = 'fallback')`
	}
	query += ` ORDER BY p.updated_at DESC LIMIT $1 OFFSET $2`

	rows, err := c.pg.Query(c.ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []Property
	for rows.Next() {
		var p Property
		err := rows.Scan(&p.ID, &p.TenantID, &p.LegacyID, &p.Reference, &p.Title,
			&p.Type, &p.Status, &p.Price, &p.MediaCount, &p.Fallbacks, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

func (c *Client) GetPropertyCount() (int, error) {
	return c.count("SELECT COUNT(*) FROM properties")
}

func (c *Client) GetContactCount() (int, error) {
	return c.count("SELECT COUNT(*) FROM contacts")
}

func (c *Client) GetFallbackMediaCount() (int, error) {
	return c.count("SELECT COUNT(*) FROM property_media WHERE status = 'fallback'")
}

func (c *Client) GetMediaForProperty(propertyID string) ([]Media, error) {
	if c.pg == nil {
		return nil, ErrNoCanonicalStore
	}
	rows, err := c.pg.Query(c.ctx, `
		SELECT ordinal, source_url, delivery_url, status, attempts
		FROM property_media
		WHERE property_id = $1
		ORDER BY ordinal
	`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.Ordinal, &m.SourceURL, &m.DeliveryURL, &m.Status, &m.Attempts); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

func (c *Client) count(query string) (int, error) {
	if c.pg == nil {
		return 0, ErrNoCanonicalStore
	}
	var count int
	err := c.pg.QueryRow(c.ctx, query).Scan(&count)
	return count, err
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// parseTime reads the timestamp formats the daemon's SQLite driver writes.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

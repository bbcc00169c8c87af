package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

const testSchema = `
	CREATE TABLE migration_runs (
		id INTEGER PRIMARY KEY,
		tenant_id TEXT,
		operation TEXT,
		target TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		warnings INTEGER DEFAULT 0,
		error TEXT
	);
	CREATE TABLE migration_logs (
		id INTEGER PRIMARY KEY,
		run_id INTEGER,
		timestamp DATETIME,
		level TEXT,
		message TEXT,
		tenant_id TEXT
	);
	CREATE TABLE commands (
		id INTEGER PRIMARY KEY,
		command TEXT,
		params JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		processed_at DATETIME
	);
`

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New("", filepath.Join(t.TempDir(), "bridge.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	if _, err := c.sqlite.Exec(testSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return c
}

func TestRecentRunsAndTenantStats(t *testing.T) {
	c := newTestClient(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	insert := `INSERT INTO migration_runs (tenant_id, operation, target, started_at, finished_at, status, warnings, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	runs := []struct {
		tenant, op, target, status string
		warnings                   int
		at                         time.Time
	}{
		{"acme", "pull_property", "101", "completed", 2, base},
		{"acme", "pull_property", "102", "not_found", 0, base.Add(time.Minute)},
		{"beta", "push_property", "p-1", "failed", 0, base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		if _, err := c.sqlite.Exec(insert, r.tenant, r.op, r.target,
			r.at.Format(time.RFC3339Nano), r.at.Add(time.Second).Format(time.RFC3339Nano), r.status, r.warnings, ""); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}

	got, err := c.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d runs, want 3", len(got))
	}
	if got[0].TenantID != "beta" || got[0].Status != "failed" {
		t.Errorf("newest run = %+v, want beta/failed", got[0])
	}
	if !got[2].StartedAt.Equal(base) {
		t.Errorf("oldest started_at = %v, want %v", got[2].StartedAt, base)
	}
	if got[2].FinishedAt == nil {
		t.Error("finished_at not read")
	}

	stats, err := c.GetTenantStats()
	if err != nil {
		t.Fatalf("GetTenantStats: %v", err)
	}
	if len(stats) != 2 || stats[0].TenantID != "acme" {
		t.Fatalf("stats = %+v", stats)
	}
	acme := stats[0]
	if acme.TotalRuns != 2 || acme.Warnings != 2 {
		t.Errorf("acme totals = %d runs %d warnings", acme.TotalRuns, acme.Warnings)
	}
	if acme.SuccessRate != 0.5 {
		t.Errorf("acme success rate = %v, want 0.5", acme.SuccessRate)
	}
	if acme.LastRunStatus == nil || *acme.LastRunStatus != "not_found" {
		t.Errorf("acme last status = %v", acme.LastRunStatus)
	}
}

func TestRecentLogsFiltersByLevel(t *testing.T) {
	c := newTestClient(t)
	now := time.Now().UTC()
	for i, level := range []string{"info", "warn", "error", "info"} {
		_, err := c.sqlite.Exec(`INSERT INTO migration_logs (run_id, timestamp, level, message, tenant_id) VALUES (?, ?, ?, ?, ?)`,
			1, now.Add(time.Duration(i)*time.Second).Format(time.RFC3339Nano), level, "line", "acme")
		if err != nil {
			t.Fatalf("insert log: %v", err)
		}
	}

	all, err := c.GetRecentLogs(50, nil)
	if err != nil {
		t.Fatalf("GetRecentLogs: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d logs, want 4", len(all))
	}

	level := "WARN"
	warns, err := c.GetRecentLogs(50, &level)
	if err != nil {
		t.Fatalf("GetRecentLogs(WARN): %v", err)
	}
	if len(warns) != 1 || warns[0].Level != "warn" {
		t.Errorf("warn filter = %+v", warns)
	}
}

func TestCommandsAreQueued(t *testing.T) {
	c := newTestClient(t)

	if err := c.PullProperty("acme", "101"); err != nil {
		t.Fatalf("PullProperty: %v", err)
	}
	if err := c.RetryMedia(); err != nil {
		t.Fatalf("RetryMedia: %v", err)
	}

	n, err := c.GetPendingCommandCount()
	if err != nil {
		t.Fatalf("GetPendingCommandCount: %v", err)
	}
	if n != 2 {
		t.Errorf("pending = %d, want 2", n)
	}

	var params string
	if err := c.sqlite.QueryRow(`SELECT params FROM commands WHERE command = 'pull_property'`).Scan(&params); err != nil {
		t.Fatalf("read params: %v", err)
	}
	if params != `{"legacy_id":"101","tenant":"acme"}` {
		t.Errorf("params = %s", params)
	}
}

func TestCanonicalQueriesNeedPostgres(t *testing.T) {
	c := newTestClient(t)
	if c.HasCanonicalStore() {
		t.Fatal("expected no canonical store")
	}
	if _, err := c.GetPropertyCount(); !errors.Is(err, ErrNoCanonicalStore) {
		t.Errorf("GetPropertyCount err = %v", err)
	}
	if _, err := c.GetProperties(10, 0, false); !errors.Is(err, ErrNoCanonicalStore) {
		t.Errorf("GetProperties err = %v", err)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	for _, s := range []string{
		"2026-03-01T10:30:00Z",
		"2026-03-01 10:30:00+00:00",
		"2026-03-01 10:30:00",
	} {
		if got := parseTime(s); !got.Equal(want) {
			t.Errorf("parseTime(%q) = %v", s, got)
		}
	}
	if !parseTime("garbage").IsZero() {
		t.Error("garbage should parse to zero time")
	}
}

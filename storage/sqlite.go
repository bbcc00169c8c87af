package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"crm_bridge/models"
)

// SQLiteStore holds operational state: the command queue and the history of
// migration runs with their log lines.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS migration_runs (
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

	CREATE TABLE IF NOT EXISTS migration_logs (
		id INTEGER PRIMARY KEY,
		run_id INTEGER,
		timestamp DATETIME,
		level TEXT,
		message TEXT,
		tenant_id TEXT
	);

	CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY,
		command TEXT,
		params JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		processed_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_commands_pending ON commands(processed_at) WHERE processed_at IS NULL;
	CREATE INDEX IF NOT EXISTS idx_logs_run ON migration_logs(run_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_tenant ON migration_runs(tenant_id, started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// Runs
// =============================================================================

func (s *SQLiteStore) CreateRun(run *models.MigrationRun) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO migration_runs (tenant_id, operation, target, started_at, status, warnings)
		VALUES (?, ?, ?, ?, ?, 0)`,
		run.TenantID, run.Operation, run.Target, run.StartedAt, run.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLiteStore) UpdateRun(run *models.MigrationRun) error {
	_, err := s.db.Exec(`
		UPDATE migration_runs SET finished_at = ?, status = ?, warnings = ?, error = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, run.Warnings, run.Error, run.ID)
	return err
}

func (s *SQLiteStore) GetRun(id int64) (*models.MigrationRun, error) {
	row := s.db.QueryRow(`
		SELECT id, tenant_id, operation, target, started_at, finished_at, status, warnings, COALESCE(error, '')
		FROM migration_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

// RecentRuns lists the newest runs, optionally for one tenant.
func (s *SQLiteStore) RecentRuns(tenantID string, limit int) ([]models.MigrationRun, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, operation, target, started_at, finished_at, status, warnings, COALESCE(error, '')
		FROM migration_runs
		WHERE (? = '' OR tenant_id = ?)
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, tenantID, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.MigrationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.MigrationRun, error) {
	var run models.MigrationRun
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &run.TenantID, &run.Operation, &run.Target, &run.StartedAt,
		&finished, &run.Status, &run.Warnings, &run.Error); err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return &run, nil
}

// =============================================================================
// Logs
// =============================================================================

func (s *SQLiteStore) Log(runID *int64, level models.LogLevel, message, tenantID string) error {
	_, err := s.db.Exec(`
		INSERT INTO migration_logs (run_id, timestamp, level, message, tenant_id)
		VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now(), level, message, tenantID)
	return err
}

func (s *SQLiteStore) RunLogs(runID int64) ([]models.MigrationLog, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, timestamp, level, message, tenant_id
		FROM migration_logs WHERE run_id = ? ORDER BY timestamp, id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.MigrationLog
	for rows.Next() {
		var l models.MigrationLog
		if err := rows.Scan(&l.ID, &l.RunID, &l.Timestamp, &l.Level, &l.Message, &l.TenantID); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// =============================================================================
// Commands
// =============================================================================

func (s *SQLiteStore) EnqueueCommand(cmd models.CommandType, params models.CommandParams) (int64, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return 0, err
	}
	result, err := s.db.Exec(`
		INSERT INTO commands (command, params, created_at) VALUES (?, ?, ?)`,
		cmd, string(raw), time.Now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLiteStore) GetPendingCommands() ([]models.Command, error) {
	rows, err := s.db.Query(`
		SELECT id, command, params, created_at, processed_at
		FROM commands WHERE processed_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cmds []models.Command
	for rows.Next() {
		var cmd models.Command
		var params sql.NullString
		if err := rows.Scan(&cmd.ID, &cmd.Command, &params, &cmd.CreatedAt, &cmd.ProcessedAt); err != nil {
			return nil, err
		}
		if params.Valid {
			cmd.Params = json.RawMessage(params.String)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, rows.Err()
}

func (s *SQLiteStore) MarkCommandProcessed(id int64) error {
	_, err := s.db.Exec(`UPDATE commands SET processed_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

func (s *SQLiteStore) ParseCommandParams(cmd *models.Command) (*models.CommandParams, error) {
	if cmd.Params == nil || string(cmd.Params) == "null" {
		return &models.CommandParams{}, nil
	}
	var params models.CommandParams
	if err := json.Unmarshal(cmd.Params, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

func (s *SQLiteStore) ResetAllData() error {
	tables := []string{
		"migration_logs",
		"migration_runs",
		"commands",
	}

	for _, table := range tables {
		_, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	return nil
}

package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"e2erun/internal/domain"
)

// DefaultTable is the history table name
const DefaultTable = "e2e_runs"

// MySQLRecorder stores run records in a MySQL table
type MySQLRecorder struct {
	db    *sql.DB
	table string
}

// Open connects to the database and makes sure the history table exists.
func Open(ctx context.Context, dsn string) (*MySQLRecorder, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	r, err := NewMySQLRecorder(db, DefaultTable)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := r.EnsureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// NewMySQLRecorder wraps an open database handle.
func NewMySQLRecorder(db *sql.DB, table string) (*MySQLRecorder, error) {
	if !isValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	return &MySQLRecorder{db: db, table: table}, nil
}

// EnsureTable creates the history table if it does not exist
func (r *MySQLRecorder) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"run_id VARCHAR(64) NOT NULL PRIMARY KEY,"+
		"outcome VARCHAR(32) NOT NULL,"+
		"specs INT NOT NULL,"+
		"tests INT NOT NULL,"+
		"passed INT NOT NULL,"+
		"failed INT NOT NULL,"+
		"pending INT NOT NULL,"+
		"started_at DATETIME(3) NOT NULL,"+
		"ended_at DATETIME(3) NOT NULL,"+
		"report_path VARCHAR(1024) NOT NULL DEFAULT '',"+
		"INDEX idx_ended_at (ended_at))", r.table)
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", r.table, err)
	}
	return nil
}

// Record inserts one run
func (r *MySQLRecorder) Record(ctx context.Context, rec RunRecord) error {
	query := fmt.Sprintf("INSERT INTO `%s` "+
		"(run_id, outcome, specs, tests, passed, failed, pending, started_at, ended_at, report_path) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", r.table)
	_, err := r.db.ExecContext(ctx, query,
		rec.RunID, string(rec.Outcome), rec.Specs, rec.Tests, rec.Passed, rec.Failed, rec.Pending,
		rec.StartedAt.UTC(), rec.EndedAt.UTC(), rec.ReportPath)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", rec.RunID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (r *MySQLRecorder) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf("SELECT run_id, outcome, specs, tests, passed, failed, pending, started_at, ended_at, report_path "+
		"FROM `%s` ORDER BY ended_at DESC LIMIT ?", r.table)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var outcome string
		if err := rows.Scan(&rec.RunID, &outcome, &rec.Specs, &rec.Tests, &rec.Passed, &rec.Failed,
			&rec.Pending, &rec.StartedAt, &rec.EndedAt, &rec.ReportPath); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.Outcome = domain.Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database handle
func (r *MySQLRecorder) Close() error {
	return r.db.Close()
}

// isValidTableName only allows identifiers made of letters, digits and underscores
func isValidTableName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return strings.IndexFunc(name, func(c rune) bool {
		return !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'))
	}) < 0
}

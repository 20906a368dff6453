// Package history records finalized runs in MySQL so dashboards can track
// pass rates across CI invocations. It is optional: an unset TRP_DB_HOST
// disables it entirely.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"trp/internal/config"
	"trp/internal/domain"
)

// Run is one recorded row of the history table.
type Run struct {
	ID         int64
	RecordedAt time.Time
	Status     domain.Status
	Total      int
	Passed     int
	Failed     int
	Skipped    int
	Flaky      int
	DurationMs int64
}

// Store persists run summaries.
type Store interface {
	Record(report *domain.Report) error
	Recent(limit int) ([]Run, error)
	Close() error
}

// MySQLStore records runs in a MySQL table, created on first use.
type MySQLStore struct {
	db    *sql.DB
	table string
}

// Open connects using the config's DSN and bootstraps the history table.
// It returns (nil, nil) when history is not configured so callers can skip
// recording without a flag of their own.
func Open(cfg *config.Config) (*MySQLStore, error) {
	dsn := cfg.GetHistoryDSN()
	if dsn == "" {
		return nil, nil
	}

	if !isValidTableName(cfg.HistoryTable) {
		return nil, fmt.Errorf("invalid history table name: %s", cfg.HistoryTable)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := &MySQLStore{db: db, table: cfg.HistoryTable}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *MySQLStore) ensureSchema() error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS `+"`%s`"+` (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		recorded_at DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL,
		total_tests INT NOT NULL,
		passed INT NOT NULL,
		failed INT NOT NULL,
		skipped INT NOT NULL,
		flaky INT NOT NULL,
		duration_ms BIGINT NOT NULL
	)`, s.table)
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

// Record inserts one row for a finalized report.
func (s *MySQLStore) Record(report *domain.Report) error {
	query := fmt.Sprintf(
		"INSERT INTO `%s` (recorded_at, status, total_tests, passed, failed, skipped, flaky, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		s.table)
	_, err := s.db.Exec(query,
		time.Now().UTC(), string(report.Status),
		report.Total, report.Passed, report.Failed, report.Skipped, report.Flaky,
		report.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *MySQLStore) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	query := fmt.Sprintf(
		"SELECT id, recorded_at, status, total_tests, passed, failed, skipped, flaky, duration_ms FROM `%s` ORDER BY recorded_at DESC, id DESC LIMIT ?",
		s.table)

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var status string
		if err := rows.Scan(&r.ID, &r.RecordedAt, &status, &r.Total, &r.Passed,
			&r.Failed, &r.Skipped, &r.Flaky, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		r.Status = domain.Status(status)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// isValidTableName rejects identifiers that could break out of the quoted
// table name. Only the table name is interpolated; all values go through
// placeholders.
func isValidTableName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}

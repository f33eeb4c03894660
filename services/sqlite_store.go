package services

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"faqbot/config"
	"faqbot/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ` + escalationTable + ` (
    id         TEXT PRIMARY KEY,
    question   TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'pending',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_unanswered_questions_status_created
    ON ` + escalationTable + ` (status, created_at);
`

// sqliteTimeLayout is fixed width so created_at sorts correctly as text
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore appends escalations to a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, q models.EscalatedQuestion) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+escalationTable+` (id, question, status, created_at) VALUES (?, ?, ?, ?)`,
		id, q.Question, string(q.Status), q.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("inserting escalation: %w", err)
	}

	return id, nil
}

func (s *SQLiteStore) List(ctx context.Context, status models.EscalationStatus, limit int) ([]models.EscalatedQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, status, created_at
		FROM `+escalationTable+`
		WHERE status = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("listing escalations: %w", err)
	}
	defer rows.Close()

	var records []models.EscalatedQuestion
	for rows.Next() {
		var q models.EscalatedQuestion
		var rawStatus, createdAt string
		if err := rows.Scan(&q.ID, &q.Question, &rawStatus, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning escalation: %w", err)
		}

		q.Status = models.EscalationStatus(rawStatus)
		if q.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", q.ID, err)
		}
		records = append(records, q)
	}

	return records, rows.Err()
}

func (s *SQLiteStore) Name() string {
	return config.BackendSQLite
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

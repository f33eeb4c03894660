package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"faqbot/config"
	"faqbot/migrations"
	"faqbot/models"
)

// PostgresStore appends escalations to the unanswered_questions table
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and migrates the database
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(connString); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// runMigrations applies the embedded SQL migrations
func runMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func (s *PostgresStore) Append(ctx context.Context, q models.EscalatedQuestion) (string, error) {
	id := uuid.NewString()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+escalationTable+` (id, question, status, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, q.Question, string(q.Status), q.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting escalation: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) List(ctx context.Context, status models.EscalationStatus, limit int) ([]models.EscalatedQuestion, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, question, status, created_at
		FROM `+escalationTable+`
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("listing escalations: %w", err)
	}
	defer rows.Close()

	var records []models.EscalatedQuestion
	for rows.Next() {
		var q models.EscalatedQuestion
		var rawStatus string
		if err := rows.Scan(&q.ID, &q.Question, &rawStatus, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning escalation: %w", err)
		}
		q.Status = models.EscalationStatus(rawStatus)
		records = append(records, q)
	}

	return records, rows.Err()
}

func (s *PostgresStore) Name() string {
	return config.BackendPostgres
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

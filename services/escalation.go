package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"faqbot/metrics"
	"faqbot/models"
)

// EscalationStore persists escalated questions. Stores are append-only:
// records are written once and only ever read back.
type EscalationStore interface {
	// Append writes one record and returns its store-assigned ID.
	Append(ctx context.Context, q models.EscalatedQuestion) (string, error)
	// List returns up to limit records with the given status, newest first.
	// Returned records carry their store-assigned ID.
	List(ctx context.Context, status models.EscalationStatus, limit int) ([]models.EscalatedQuestion, error)
	// Name identifies the backend in logs, metrics and health output.
	Name() string
	Close() error
}

// EscalationLogger records unanswered questions for human follow-up.
// Writes are best effort: failures are logged and counted, never retried.
type EscalationLogger struct {
	store   EscalationStore
	timeout time.Duration
	logger  *slog.Logger
}

// NewEscalationLogger creates a logger writing to store, bounding each write by timeout
func NewEscalationLogger(store EscalationStore, timeout time.Duration, logger *slog.Logger) *EscalationLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &EscalationLogger{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// Escalate appends a pending record for question. The write is detached from
// ctx cancellation so a client hanging up does not drop the record.
func (l *EscalationLogger) Escalate(ctx context.Context, question string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	id, err := l.store.Append(ctx, models.NewEscalatedQuestion(question))
	metrics.RecordEscalation(l.store.Name(), err)
	if err != nil {
		l.logger.Error("failed to escalate question", "store", l.store.Name(), "question", question, "error", err)
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	l.logger.Info("question escalated", "store", l.store.Name(), "id", id)
	return nil
}

// StoreName returns the backing store's name
func (l *EscalationLogger) StoreName() string {
	return l.store.Name()
}

// List reads the escalation queue for human follow-up, newest first
func (l *EscalationLogger) List(ctx context.Context, status models.EscalationStatus, limit int) ([]models.EscalatedQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	records, err := l.store.List(ctx, status, limit)
	if err != nil {
		l.logger.Error("failed to list escalations", "store", l.store.Name(), "status", status, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return records, nil
}

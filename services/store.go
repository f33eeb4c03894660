package services

import (
	"context"
	"fmt"

	"faqbot/config"
)

// escalationTable is the SQL table behind the postgres and sqlite stores
const escalationTable = "unanswered_questions"

// OpenEscalationStore connects the backend selected by cfg
func OpenEscalationStore(ctx context.Context, cfg config.StoreConfig) (EscalationStore, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		return NewFirestoreStore(ctx, cfg.Credentials, cfg.Collection)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown escalation store %q", cfg.Backend)
	}
}

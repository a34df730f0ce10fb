package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/larder/internal/store"
)

// The whole list is persisted as one JSON document under a fixed key.
// Writes replace the document wholesale (last write wins).
const documentKey = "shopping_list"

var migrations = []store.Migration{
	{
		Version:     1,
		Description: "create shopping_documents table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS shopping_documents (
					key        TEXT PRIMARY KEY,
					payload    TEXT NOT NULL,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)
			`)
			return err
		},
	},
}

// Repository persists shopping documents in SQLite.
type Repository struct {
	store  *store.SQLiteStore
	logger *zap.Logger
}

func NewRepository(st *store.SQLiteStore, logger *zap.Logger) *Repository {
	return &Repository{store: st, logger: logger}
}

// Migrate applies the module's schema migrations.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.store.Migrate(ctx, "shopping", migrations)
}

// Load reads the persisted document. A missing row or an unreadable payload
// yields a fresh empty document rather than an error, so a corrupted list
// never blocks the module.
func (r *Repository) Load(ctx context.Context) (*Document, error) {
	var payload string
	err := r.store.DB().QueryRowContext(ctx,
		"SELECT payload FROM shopping_documents WHERE key = ?", documentKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load shopping document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		r.logger.Warn("discarding unreadable shopping document", zap.Error(err))
		return NewDocument(), nil
	}
	if doc.Items == nil {
		doc.Items = NewDocument().Items
	}
	return &doc, nil
}

// Save writes the document back, replacing any previous state.
func (r *Repository) Save(ctx context.Context, doc *Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode shopping document: %w", err)
	}
	_, err = r.store.DB().ExecContext(ctx, `
		INSERT INTO shopping_documents (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`, documentKey, string(payload))
	if err != nil {
		return fmt.Errorf("save shopping document: %w", err)
	}
	return nil
}

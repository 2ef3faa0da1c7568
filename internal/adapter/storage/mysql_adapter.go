package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bbrother/cafe-api/internal/port"
)

// MySQLAdapter implements port.DocumentStore on a single JSON-bodied
// documents table, one row per document, keyed by (collection, id).
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// EnsureSchema creates the documents table if it does not exist. Called once
// at startup.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(64) NOT NULL,
			id CHAR(36) NOT NULL,
			body JSON NOT NULL,
			created_at DATETIME(6) NOT NULL,
			PRIMARY KEY (collection, id),
			KEY idx_documents_created (collection, created_at)
		)`)
	if err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) InsertOne(ctx context.Context, collection string, data []byte) (port.Document, error) {
	doc := port.Document{
		ID:        uuid.New(),
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at)
		VALUES (?, ?, ?, ?)`,
		collection, doc.ID.String(), []byte(doc.Data), doc.CreatedAt,
	)
	if err != nil {
		return port.Document{}, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

func (m *MySQLAdapter) FindByID(ctx context.Context, collection string, id uuid.UUID) (*port.Document, error) {
	doc := port.Document{ID: id}
	var body []byte
	err := m.db.QueryRowContext(ctx, `
		SELECT body, created_at FROM documents
		WHERE collection = ? AND id = ?`,
		collection, id.String(),
	).Scan(&body, &doc.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	doc.Data = body
	return &doc, nil
}

func (m *MySQLAdapter) FindAll(ctx context.Context, collection string) ([]port.Document, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, body, created_at FROM documents
		WHERE collection = ? ORDER BY created_at`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []port.Document
	for rows.Next() {
		var (
			doc   port.Document
			rawID string
			body  []byte
		)
		if err := rows.Scan(&rawID, &body, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse document id %q: %w", rawID, err)
		}
		doc.Data = body
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// Ping reports whether the database is reachable.
func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

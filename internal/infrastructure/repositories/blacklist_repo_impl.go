package repositories

import (
	"context"
	"database/sql"
	"time"

	"payease.backend/internal/domain/entities"
)

// BlacklistRepository implements deny-list data operations
type BlacklistRepository struct {
	db *sql.DB
}

// NewBlacklistRepository creates a new blacklist repository
func NewBlacklistRepository(db *sql.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Contains reports whether the email or phone appears in the blacklist
func (r *BlacklistRepository) Contains(ctx context.Context, email, phone string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM blacklist_entries
		WHERE (type = 'email' AND value = $1)
		   OR (type = 'phone' AND value = $2)
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email, phone).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add appends an entry to the blacklist
func (r *BlacklistRepository) Add(ctx context.Context, entry *entities.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist_entries (type, value, reason, added_at)
		VALUES ($1, $2, $3, $4)
	`

	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.Type,
		entry.Value,
		entry.Reason,
		entry.AddedAt,
	)
	return err
}

// List returns all blacklist entries, oldest first
func (r *BlacklistRepository) List(ctx context.Context) ([]*entities.BlacklistEntry, error) {
	query := `
		SELECT type, value, reason, added_at
		FROM blacklist_entries
		ORDER BY added_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entities.BlacklistEntry
	for rows.Next() {
		entry := &entities.BlacklistEntry{}
		if err := rows.Scan(&entry.Type, &entry.Value, &entry.Reason, &entry.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// EnsureSchema creates the blacklist table when it does not exist
func (r *BlacklistRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS blacklist_entries (
			id SERIAL PRIMARY KEY,
			type VARCHAR(10) NOT NULL,
			value VARCHAR(255) NOT NULL,
			reason TEXT NOT NULL,
			added_at TIMESTAMPTZ NOT NULL
		)
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Seed inserts the demo deny-list entries when the table is empty
func (r *BlacklistRepository) Seed(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blacklist_entries`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []*entities.BlacklistEntry{
		{Type: entities.BlacklistTypeEmail, Value: "spam@example.com", Reason: "Fraudulent activity", AddedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Type: entities.BlacklistTypePhone, Value: "+1555000000", Reason: "Multiple failed verifications", AddedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Type: entities.BlacklistTypeEmail, Value: "fraud@test.com", Reason: "Suspected fraud", AddedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, entry := range seed {
		if err := r.Add(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

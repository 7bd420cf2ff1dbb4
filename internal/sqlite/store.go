package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pkarpov/crewdeck/internal/collection"
)

// ErrDuplicateID indicates an insert with an id the collection already has.
var ErrDuplicateID = errors.New("duplicate record id")

// Store provides raw JSON document access for one collection.
type Store struct {
	db  *DB
	key string
}

// NewStore creates a store scoped to one collection key.
func NewStore(db *DB, key string) *Store {
	return &Store{db: db, key: key}
}

func (s *Store) all(ctx context.Context) ([][]byte, error) {
	query := `
		SELECT data FROM records
		WHERE collection = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		docs = append(docs, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return docs, nil
}

func (s *Store) get(ctx context.Context, id string) ([]byte, error) {
	query := `SELECT data FROM records WHERE collection = ? AND id = ?`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, s.key, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, collection.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return data, nil
}

func (s *Store) insert(ctx context.Context, id string, data []byte) error {
	query := `INSERT INTO records (collection, id, data) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, s.key, id, data); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *Store) update(ctx context.Context, id string, data []byte) error {
	query := `
		UPDATE records SET data = ?, modified_at = CURRENT_TIMESTAMP
		WHERE collection = ? AND id = ?
	`

	res, err := s.db.ExecContext(ctx, query, data, s.key, id)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return collection.ErrNotFound
	}
	return nil
}

func (s *Store) delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM records WHERE collection = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query, s.key, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

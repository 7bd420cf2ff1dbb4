package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkarpov/crewdeck/internal/collection"
)

// Source implements collection.Source over the JSON document store. It
// plays the external data collaborator: ids are assigned here on create,
// and partial updates are merged against the stored document before the
// authoritative record is returned.
type Source[T collection.Record] struct {
	store *Store
}

// NewSource creates a typed source for one collection key.
func NewSource[T collection.Record](db *DB, key string) *Source[T] {
	return &Source[T]{store: NewStore(db, key)}
}

// GetAll returns the full collection in insertion order.
func (s *Source[T]) GetAll(ctx context.Context) ([]T, error) {
	docs, err := s.store.all(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(docs))
	for _, doc := range docs {
		var rec T
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Create stores a draft, assigning an id when the draft has none, and
// returns the created record.
func (s *Source[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T

	doc, err := toDocument(draft)
	if err != nil {
		return zero, err
	}
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.NewString()
		doc["id"] = id
	}

	rec, data, err := fromDocument[T](doc)
	if err != nil {
		return zero, err
	}
	if err := s.store.insert(ctx, id, data); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update shallow-merges the patch over the stored document. The id is
// immutable; a patched id is ignored.
func (s *Source[T]) Update(ctx context.Context, id string, patch collection.Patch) (T, error) {
	var zero T

	stored, err := s.store.get(ctx, id)
	if err != nil {
		return zero, err
	}

	var doc map[string]any
	if err := json.Unmarshal(stored, &doc); err != nil {
		return zero, fmt.Errorf("failed to decode stored record: %w", err)
	}
	for field, value := range patch {
		if field == "id" {
			continue
		}
		doc[field] = value
	}
	doc["id"] = id

	rec, data, err := fromDocument[T](doc)
	if err != nil {
		return zero, err
	}
	if err := s.store.update(ctx, id, data); err != nil {
		return zero, err
	}
	return rec, nil
}

// Delete removes a record, reporting whether it existed.
func (s *Source[T]) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.delete(ctx, id)
}

func toDocument[T any](rec T) (map[string]any, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return doc, nil
}

func fromDocument[T any](doc map[string]any) (T, []byte, error) {
	var rec T
	data, err := json.Marshal(doc)
	if err != nil {
		return rec, nil, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, nil, fmt.Errorf("failed to decode record: %w", err)
	}
	// Re-encode from the typed record so stored documents keep a stable
	// field set even when a patch introduced unknown fields.
	stored, err := json.Marshal(rec)
	if err != nil {
		return rec, nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return rec, stored, nil
}

package persist

import (
	"context"
	"fmt"

	"burnboard/internal/kanban/models"
	"burnboard/internal/logs"
	"burnboard/internal/storage"
)

// DefaultKey is the storage key the board lives under
const DefaultKey = "cards"

// Repository reads and writes the board under one key
type Repository struct {
	store storage.Store
	key   string
}

func NewRepository(store storage.Store, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{store: store, key: key}
}

// Key returns the storage key
func (r *Repository) Key() string {
	return r.key
}

// Load returns the stored cards. Missing or corrupt data yields an empty
// board; only storage failures are returned as errors.
func (r *Repository) Load(ctx context.Context) ([]models.Card, error) {
	data, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return []models.Card{}, fmt.Errorf("failed to load board: %w", err)
	}
	if !ok {
		return []models.Card{}, nil
	}

	cards, err := Decode(data)
	if err != nil {
		logs.Logger.Printf("Ignoring corrupt board under %q: %v", r.key, err)
		return []models.Card{}, nil
	}
	return cards, nil
}

// Save replaces the stored cards
func (r *Repository) Save(ctx context.Context, cards []models.Card) error {
	data, err := Encode(cards)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// Package cardstore holds the board's single ordered card sequence and
// persists every change once the initial load has completed.
package cardstore

import (
	"context"
	"slices"

	"burnboard/internal/kanban/models"
	"burnboard/internal/kanban/operations"
	"burnboard/internal/kanban/persist"
	"burnboard/internal/logs"
)

// Store is the source of truth for board state. Every mutation replaces the
// whole snapshot; snapshots handed out are never modified afterwards. A Store
// is not safe for concurrent use.
type Store struct {
	repo   *persist.Repository
	cards  []models.Card
	loaded bool
}

func New(repo *persist.Repository) *Store {
	return &Store{repo: repo, cards: []models.Card{}}
}

// Load reads the persisted board. Writes are suppressed until Load returns so
// an empty board never overwrites stored data.
func (s *Store) Load(ctx context.Context) error {
	cards, err := s.repo.Load(ctx)
	s.cards = cards
	s.loaded = true
	return err
}

// Loaded reports whether the initial load completed
func (s *Store) Loaded() bool {
	return s.loaded
}

// Cards returns the current snapshot
func (s *Store) Cards() []models.Card {
	return slices.Clone(s.cards)
}

// Column returns the cards of one column in board order
func (s *Store) Column(column models.Column) []models.Card {
	return models.InColumn(s.cards, column)
}

// Get looks up a card by id
func (s *Store) Get(id string) (models.Card, bool) {
	idx := models.Find(s.cards, id)
	if idx == -1 {
		return models.Card{}, false
	}
	return s.cards[idx], true
}

// Replace swaps in a new snapshot and persists it when it differs from the
// current one.
func (s *Store) Replace(ctx context.Context, cards []models.Card) error {
	if slices.Equal(cards, s.cards) {
		return nil
	}
	s.cards = slices.Clone(cards)
	return s.persist(ctx)
}

// Insert appends a new card
func (s *Store) Insert(ctx context.Context, card models.Card) error {
	return s.Replace(ctx, operations.Insert(s.cards, card))
}

// Remove deletes a card; removing a missing id does nothing
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.Replace(ctx, operations.Remove(s.cards, id))
}

// Move relocates a card. It reports whether the board changed.
func (s *Store) Move(ctx context.Context, id string, column models.Column, beforeID string) (bool, error) {
	result, changed := operations.Move(s.cards, id, column, beforeID)
	if !changed {
		return false, nil
	}
	return true, s.Replace(ctx, result)
}

func (s *Store) persist(ctx context.Context) error {
	if !s.loaded {
		logs.Logger.Printf("Skipping save of %d cards: board not loaded yet", len(s.cards))
		return nil
	}
	if err := s.repo.Save(ctx, s.cards); err != nil {
		logs.Logger.Printf("Error saving board: %v", err)
		return err
	}
	return nil
}

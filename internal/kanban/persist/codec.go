// Package persist serializes the card sequence and stores it under a single
// key of a storage.Store.
package persist

import (
	"encoding/json"
	"fmt"

	"burnboard/internal/kanban/models"
)

// Encode serializes cards in board order
func Encode(cards []models.Card) (string, error) {
	if cards == nil {
		cards = []models.Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return "", fmt.Errorf("error encoding cards: %w", err)
	}
	return string(data), nil
}

// Decode parses a serialized card sequence. Entries with an unknown column or
// a missing or duplicate id make the whole payload invalid.
func Decode(data string) ([]models.Card, error) {
	var cards []models.Card
	if err := json.Unmarshal([]byte(data), &cards); err != nil {
		return nil, fmt.Errorf("error decoding cards: %w", err)
	}
	if err := validate(cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

func validate(cards []models.Card) error {
	seen := make(map[string]bool, len(cards))
	for i, c := range cards {
		if c.ID == "" {
			return fmt.Errorf("card %d has no id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate card id %q", c.ID)
		}
		if !c.Column.Valid() {
			return fmt.Errorf("card %q has unknown column %q", c.ID, c.Column)
		}
		seen[c.ID] = true
	}
	return nil
}

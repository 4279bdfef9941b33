package operations

import (
	"errors"
	"fmt"
	"strings"

	"burnboard/internal/kanban/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle    = errors.New("card title cannot be empty")
	ErrUnknownColumn = errors.New("unknown column")
)

// NewID returns a fresh card id
func NewID() string {
	return uuid.NewString()
}

// NewCard builds a card with a fresh id for the given column
func NewCard(title string, column models.Column) (models.Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Card{}, ErrEmptyTitle
	}
	if !column.Valid() {
		return models.Card{}, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	return models.Card{
		ID:     NewID(),
		Title:  title,
		Column: column,
	}, nil
}

// Insert returns a new sequence with card appended to the end
func Insert(cards []models.Card, card models.Card) []models.Card {
	result := make([]models.Card, 0, len(cards)+1)
	result = append(result, cards...)
	return append(result, card)
}

// Remove returns a new sequence without the card with the given id.
// Removing an id that is not present returns an unchanged copy.
func Remove(cards []models.Card, id string) []models.Card {
	result := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			result = append(result, c)
		}
	}
	return result
}

// Move relocates the card with the given id into column, placing it
// immediately before the card beforeID or at the end of the whole sequence
// when beforeID is models.EndOfColumn. The returned bool is false when
// nothing changed: self-drop, unknown card or a stale beforeID.
func Move(cards []models.Card, id string, column models.Column, beforeID string) ([]models.Card, bool) {
	if beforeID == id {
		return cards, false
	}

	idx := models.Find(cards, id)
	if idx == -1 {
		return cards, false
	}

	moving := cards[idx]
	moving.Column = column

	rest := Remove(cards, id)

	if beforeID == models.EndOfColumn {
		return append(rest, moving), true
	}

	insertAt := models.Find(rest, beforeID)
	if insertAt == -1 {
		return cards, false
	}

	result := make([]models.Card, 0, len(cards))
	result = append(result, rest[:insertAt]...)
	result = append(result, moving)
	result = append(result, rest[insertAt:]...)
	return result, true
}

// MoveToAdjacent moves a card to the end of the column delta positions away
// (-1 for left, +1 for right). It is a no-op at the board edges.
func MoveToAdjacent(cards []models.Card, id string, delta int) ([]models.Card, bool) {
	idx := models.Find(cards, id)
	if idx == -1 {
		return cards, false
	}

	target := cards[idx].Column.Index() + delta
	if target < 0 || target >= len(models.Columns) {
		return cards, false
	}

	return Move(cards, id, models.Columns[target], models.EndOfColumn)
}

// Reorder shifts a card up (delta < 0) or down (delta > 0) by one position
// among the cards of its own column.
func Reorder(cards []models.Card, id string, delta int) ([]models.Card, bool) {
	idx := models.Find(cards, id)
	if idx == -1 {
		return cards, false
	}

	column := cards[idx].Column
	siblings := models.InColumn(cards, column)
	pos := models.Find(siblings, id)

	switch {
	case delta < 0:
		if pos == 0 {
			return cards, false
		}
		return Move(cards, id, column, siblings[pos-1].ID)
	case delta > 0:
		if pos >= len(siblings)-1 {
			return cards, false
		}
		if pos+2 < len(siblings) {
			return Move(cards, id, column, siblings[pos+2].ID)
		}
		// Last position: place directly after the final sibling.
		last := models.Find(cards, siblings[pos+1].ID)
		rest := Remove(cards, id)
		at := models.Find(rest, cards[last].ID) + 1
		result := make([]models.Card, 0, len(cards))
		result = append(result, rest[:at]...)
		result = append(result, cards[idx])
		result = append(result, rest[at:]...)
		return result, true
	}
	return cards, false
}

// DemoCards returns the sixteen-card sample board used by the seed command
func DemoCards() []models.Card {
	var cards []models.Card
	n := 1
	for _, col := range models.Columns {
		for i := 0; i < 4; i++ {
			cards = append(cards, models.Card{
				ID:     fmt.Sprintf("%d", n),
				Title:  fmt.Sprintf("Este é o teste %d", n),
				Column: col,
			})
			n++
		}
	}
	return cards
}

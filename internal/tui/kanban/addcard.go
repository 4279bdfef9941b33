package kanban

import (
	"context"
	"errors"
	"fmt"

	"burnboard/internal/kanban/models"
	"burnboard/internal/kanban/operations"
	"burnboard/internal/logs"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// openAddCard shows the inline add form at the bottom of a column
func (m BoardModel) openAddCard(col int) (BoardModel, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "Add new task..."
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = cardInnerWidth - 2
	ti.Focus()

	m.addInput = ti
	m.addColumn = col
	m.mode = boardModeAddCard
	if col != m.selectedCol {
		m.selectColumn(col)
	}
	m.scrollToEnd(col)
	return m, textinput.Blink
}

func (m BoardModel) updateAddCard(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAddCard()
		return m, nil

	case "enter":
		column := models.Columns[m.addColumn]
		card, err := operations.NewCard(m.addInput.Value(), column)
		if errors.Is(err, operations.ErrEmptyTitle) {
			// Keep the form open, nothing to add yet
			m.addInput.SetValue("")
			return m, nil
		}
		if err != nil {
			m.err = err
			m.closeAddCard()
			return m, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := m.store.Insert(ctx, card); err != nil {
			logs.Logger.Printf("Error saving new card %s: %v", card.ID, err)
			m.err = fmt.Errorf("save failed: %w", err)
		} else {
			m.message = "Card added"
		}
		m.closeAddCard()
		if m.filterActive {
			m.recomputeFilter()
		}
		m.followCard(card.ID)
		return m, nil

	default:
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}
}

func (m *BoardModel) closeAddCard() {
	m.addInput.Blur()
	m.addInput.SetValue("")
	m.addColumn = -1
	m.mode = boardModeNormal
	m.adjustScrollPosition()
}

// scrollToEnd scrolls a column so its last card and the add form are visible
func (m *BoardModel) scrollToEnd(col int) {
	cards := m.getVisibleCards(col)
	fit := max(1, slotCapacity(columnInnerHeight(m.height), len(cards) == 0, true))
	m.columnScrollOffsets[col] = max(0, len(cards)-fit)
}

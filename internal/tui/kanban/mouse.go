package kanban

import (
	"burnboard/internal/kanban/dragdrop"
	"burnboard/internal/logs"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse drives the drag session from mouse events. A left press on a
// card picks it up, motion with the button held moves the drop indicator and
// the release drops the card on whatever lies under the pointer.
func (m BoardModel) handleMouse(msg tea.MouseMsg) (BoardModel, tea.Cmd) {
	lay := m.layout()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if col, ok := lay.columnAt(msg.X, msg.Y); ok {
				m.scrollColumn(col.Index, -1)
			}
		case tea.MouseButtonWheelDown:
			if col, ok := lay.columnAt(msg.X, msg.Y); ok {
				m.scrollColumn(col.Index, 1)
			}
		case tea.MouseButtonLeft:
			return m.mousePress(lay, msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if m.session.Active() {
			m.dragOver(lay, msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if m.session.Active() {
			m.drop(lay, msg.X, msg.Y)
		}
	}

	return m, nil
}

func (m BoardModel) mousePress(lay boardLayout, x, y int) (BoardModel, tea.Cmd) {
	// A press while a drag is still open means the release was lost
	if m.session.Active() {
		m.session.Cancel()
	}

	switch m.mode {
	case boardModeNormal:
	case boardModeAddCard:
		if col, ok := lay.columnAt(x, y); ok && col.Index == m.addColumn && y >= col.AddRow {
			return m, nil
		}
		m.closeAddCard()
		lay = m.layout()
	default:
		return m, nil
	}

	col, ok := lay.columnAt(x, y)
	if !ok {
		return m, nil
	}

	if y == col.AddRow {
		return m.openAddCard(col.Index)
	}

	idx, ok := col.cardAt(y)
	if !ok {
		return m, nil
	}

	card := col.Cards[idx]
	m.message = ""
	m.err = nil
	m.selectedCol = col.Index
	m.selectedCard = idx
	m.columnCursorPos[col.Index] = idx
	if m.session.Begin(card.ID) {
		logs.Logger.Printf("Drag started: %s", card.ID)
	}
	return m, nil
}

// dragOver updates the highlighted drop target for the pointer position
func (m *BoardModel) dragOver(lay boardLayout, x, y int) dragdrop.Highlight {
	if lay.Barrel.contains(x, y) {
		return m.session.OverBarrel()
	}
	if col, ok := lay.columnAt(x, y); ok {
		return m.session.OverColumn(col.Column, pointerUnits(y), col.Markers)
	}
	m.session.Leave()
	return dragdrop.NoHighlight
}

// drop finishes the drag and applies its outcome to the card store
func (m *BoardModel) drop(lay boardLayout, x, y int) {
	id := m.session.CardID()

	var outcome dragdrop.Outcome
	switch col, ok := lay.columnAt(x, y); {
	case lay.Barrel.contains(x, y):
		outcome = m.session.DropOnBarrel(m.store.Cards())
	case ok:
		outcome = m.session.DropOnColumn(m.store.Cards(), col.Column, pointerUnits(y), col.Markers)
	default:
		m.session.Cancel()
		logs.Logger.Printf("Drag cancelled: %s", id)
		return
	}

	switch outcome.Kind {
	case dragdrop.OutcomeMoved:
		m.replace(outcome.Cards)
		m.message = "Card moved"
		m.followCard(outcome.CardID)
	case dragdrop.OutcomeBurned:
		m.replace(outcome.Cards)
		m.message = "Card burned"
		m.clampFilteredCursors()
		m.adjustScrollPosition()
	}
	logs.Logger.Printf("Drag finished: %s (%d)", id, outcome.Kind)
}

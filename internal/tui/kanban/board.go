package kanban

import (
	"context"
	"fmt"
	"slices"
	"time"

	"burnboard/internal/kanban/cardstore"
	"burnboard/internal/kanban/dragdrop"
	"burnboard/internal/kanban/models"
	"burnboard/internal/kanban/operations"
	"burnboard/internal/logs"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeMove
	boardModeConfirmDelete
	boardModeAddCard
	boardModeFilter
)

// saveTimeout bounds a single write to the storage backend
const saveTimeout = 10 * time.Second

type BoardModel struct {
	store                  *cardstore.Store
	session                *dragdrop.Session
	name                   string
	selectedCol            int
	selectedCard           int
	mode                   boardMode
	width                  int
	height                 int
	err                    error
	message                string
	columnScrollOffsets    []int // scroll position (card index) for each column
	columnCursorPos        []int // cursor position (card index) for each column
	columnHorizontalOffset int   // horizontal scroll offset (first visible column index)
	addInput               textinput.Model
	addColumn              int // column the add form belongs to, -1 when closed
	filterInput            textinput.Model
	filterQuery            string
	filterActive           bool
	filteredIndices        [][]int // per-column: card indices within the column that match
}

func NewBoardModel(store *cardstore.Store, name string) BoardModel {
	return BoardModel{
		store:               store,
		session:             dragdrop.NewSession(),
		name:                name,
		mode:                boardModeNormal,
		addColumn:           -1,
		columnScrollOffsets: make([]int, len(models.Columns)),
		columnCursorPos:     make([]int, len(models.Columns)),
	}
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// IsModal returns true if the board is capturing keys (filter, add form, etc.)
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal || m.session.Active()
}

// Dragging reports whether a card is being dragged with the mouse
func (m BoardModel) Dragging() bool {
	return m.session.Active()
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.session.Active() {
			if msg.String() == "esc" {
				m.session.Cancel()
				m.message = "Drag cancelled"
			}
			return m, nil
		}

		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeMove:
			return m.updateMove(msg)
		case boardModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case boardModeAddCard:
			return m.updateAddCard(msg)
		case boardModeFilter:
			return m.updateFilter(msg)
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil

	switch msg.String() {
	case "esc":
		if m.filterActive {
			m.clearFilter()
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "filter..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.filterQuery)
		ti.Focus()
		m.filterInput = ti
		m.mode = boardModeFilter
		m.selectedCard = 0
		m.columnCursorPos[m.selectedCol] = 0
		return m, textinput.Blink

	case "h", "left":
		if m.selectedCol > 0 {
			m.selectColumn(m.selectedCol - 1)
		}

	case "l", "right":
		if m.selectedCol < len(models.Columns)-1 {
			m.selectColumn(m.selectedCol + 1)
		}

	case "j", "down":
		maxCard := len(m.getVisibleCards(m.selectedCol)) - 1
		if m.selectedCard < maxCard {
			m.selectedCard++
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case "m", " ":
		if len(m.getVisibleCards(m.selectedCol)) > 0 {
			m.mode = boardModeMove
		}

	case "n", "a":
		return m.openAddCard(m.selectedCol)

	case "D", "x":
		if len(m.getVisibleCards(m.selectedCol)) > 0 {
			m.mode = boardModeConfirmDelete
		}
	}

	return m, nil
}

func (m BoardModel) updateMove(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	card, ok := m.selectedCardValue()
	if !ok {
		m.mode = boardModeNormal
		return m, nil
	}

	switch msg.String() {
	case "esc", "q", "m", " ", "enter":
		m.mode = boardModeNormal
		return m, nil

	case "h", "left":
		if m.selectedCol > 0 {
			cards, changed := operations.MoveToAdjacent(m.store.Cards(), card.ID, -1)
			if changed {
				m.replace(cards)
				m.message = "Card moved"
				m.followCard(card.ID)
			}
			m.mode = boardModeNormal
		}

	case "l", "right":
		if m.selectedCol < len(models.Columns)-1 {
			cards, changed := operations.MoveToAdjacent(m.store.Cards(), card.ID, 1)
			if changed {
				m.replace(cards)
				m.message = "Card moved"
				m.followCard(card.ID)
			}
			m.mode = boardModeNormal
		}

	case "j", "down":
		if cards, changed := operations.Reorder(m.store.Cards(), card.ID, 1); changed {
			m.replace(cards)
			m.followCard(card.ID)
		}

	case "k", "up":
		if cards, changed := operations.Reorder(m.store.Cards(), card.ID, -1); changed {
			m.replace(cards)
			m.followCard(card.ID)
		}
	}

	return m, nil
}

func (m BoardModel) updateConfirmDelete(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		if card, ok := m.selectedCardValue(); ok {
			m.burn(card.ID, m.store.Cards())
		}
		m.mode = boardModeNormal

	case "n", "esc":
		m.mode = boardModeNormal
	}

	return m, nil
}

func (m BoardModel) updateFilter(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Lock filter and return to normal mode
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
			m.selectedCard = 0
			m.columnCursorPos[m.selectedCol] = 0
			m.adjustScrollPosition()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.mode = boardModeNormal
		return m, nil

	case "esc":
		m.clearFilter()
		m.mode = boardModeNormal
		return m, nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		// Live recompute
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.clampFilteredCursors()
		m.adjustScrollPosition()
		return m, cmd
	}
}

func (m *BoardModel) clearFilter() {
	m.filterQuery = ""
	m.filterActive = false
	m.filteredIndices = nil
	m.selectedCard = 0
	m.columnCursorPos[m.selectedCol] = 0
	m.adjustScrollPosition()
}

// replace applies a new card sequence to the store. Save failures are shown
// in the status line; the in-memory board keeps the new state either way.
func (m *BoardModel) replace(cards []models.Card) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := m.store.Replace(ctx, cards); err != nil {
		logs.Logger.Printf("Error saving board: %v", err)
		m.err = fmt.Errorf("save failed: %w", err)
	}
	if m.filterActive {
		m.recomputeFilter()
	}
}

// burn deletes a card, the keyboard and burn barrel share this path
func (m *BoardModel) burn(id string, cards []models.Card) {
	if models.Find(cards, id) == -1 {
		return
	}
	m.replace(operations.Remove(cards, id))
	m.message = "Card burned"
	m.clampFilteredCursors()
	m.adjustScrollPosition()
}

// selectColumn moves the cursor to a column, restoring its saved card position
func (m *BoardModel) selectColumn(col int) {
	m.selectedCol = col
	m.selectedCard = m.columnCursorPos[col]
	visibleCount := len(m.getVisibleCards(col))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
		m.columnCursorPos[col] = m.selectedCard
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// followCard moves the cursor onto the card with the given id
func (m *BoardModel) followCard(id string) {
	card, ok := m.store.Get(id)
	if !ok {
		return
	}
	col := card.Column.Index()
	for i, c := range m.getVisibleCards(col) {
		if c.ID == id {
			m.selectedCol = col
			m.selectedCard = i
			m.columnCursorPos[col] = i
			break
		}
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

func (m BoardModel) selectedCardValue() (models.Card, bool) {
	cards := m.getVisibleCards(m.selectedCol)
	if m.selectedCard < 0 || m.selectedCard >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.selectedCard], true
}

func (m *BoardModel) recomputeFilter() {
	if m.filterQuery == "" {
		m.filterActive = false
		m.filteredIndices = nil
		return
	}

	m.filteredIndices = make([][]int, len(models.Columns))
	for colIdx, col := range models.Columns {
		cards := m.store.Column(col)
		searchStrings := make([]string, len(cards))
		for i, card := range cards {
			searchStrings[i] = card.Title
		}
		matches := fuzzy.Find(m.filterQuery, searchStrings)
		indices := make([]int, len(matches))
		for i, match := range matches {
			indices[i] = match.Index
		}
		// Keep board order so markers stay monotonic
		slices.Sort(indices)
		m.filteredIndices[colIdx] = indices
	}
}

// getVisibleCards returns the cards shown in a column after filtering
func (m *BoardModel) getVisibleCards(colIndex int) []models.Card {
	cards := m.store.Column(models.Columns[colIndex])
	if !m.filterActive || m.filteredIndices == nil || colIndex >= len(m.filteredIndices) {
		return cards
	}
	indices := m.filteredIndices[colIndex]
	visible := make([]models.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < len(cards) {
			visible = append(visible, cards[idx])
		}
	}
	return visible
}

// clampFilteredCursors ensures cursor positions are valid for the visible card sets
func (m *BoardModel) clampFilteredCursors() {
	visibleCount := len(m.getVisibleCards(m.selectedCol))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
	}
	m.columnCursorPos[m.selectedCol] = m.selectedCard
}

func (m *BoardModel) layoutInput() layoutInput {
	cards := make([][]models.Card, len(models.Columns))
	for i := range models.Columns {
		cards[i] = m.getVisibleCards(i)
	}
	adding := -1
	if m.mode == boardModeAddCard {
		adding = m.addColumn
	}
	return layoutInput{
		Width:            m.width,
		Height:           m.height,
		HorizontalOffset: m.columnHorizontalOffset,
		Cards:            cards,
		Scroll:           m.columnScrollOffsets,
		AddingColumn:     adding,
	}
}

// layout computes the current screen geometry
func (m *BoardModel) layout() boardLayout {
	return computeLayout(m.layoutInput())
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	cards := m.getVisibleCards(m.selectedCol)
	adding := m.mode == boardModeAddCard && m.addColumn == m.selectedCol
	fit := max(1, slotCapacity(columnInnerHeight(m.height), len(cards) == 0, adding))

	offset := m.columnScrollOffsets[m.selectedCol]
	if m.selectedCard < offset {
		offset = m.selectedCard
	} else if m.selectedCard >= offset+fit {
		offset = m.selectedCard - fit + 1
	}
	offset = min(offset, max(0, len(cards)-fit))
	m.columnScrollOffsets[m.selectedCol] = max(0, offset)
}

// scrollColumn scrolls a column by delta cards, used by the mouse wheel
func (m *BoardModel) scrollColumn(col, delta int) {
	cards := m.getVisibleCards(col)
	fit := max(1, slotCapacity(columnInnerHeight(m.height), len(cards) == 0, false))
	offset := m.columnScrollOffsets[col] + delta
	offset = min(offset, max(0, len(cards)-fit))
	m.columnScrollOffsets[col] = max(0, offset)
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns() (startCol, endCol int) {
	count := visibleColumnCount(m.width)
	startCol = min(max(m.columnHorizontalOffset, 0), len(models.Columns)-count)
	return startCol, startCol + count
}

// adjustHorizontalScrollPosition ensures the selected column is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	startCol, endCol := m.calculateVisibleColumns()

	if m.selectedCol < startCol {
		m.columnHorizontalOffset = m.selectedCol
		return
	}

	if m.selectedCol >= endCol {
		visibleCount := endCol - startCol
		m.columnHorizontalOffset = max(0, m.selectedCol-visibleCount+1)
		return
	}

	m.columnHorizontalOffset = startCol
}

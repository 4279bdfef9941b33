package kanban

import (
	"context"
	"strings"
	"testing"

	"burnboard/internal/kanban/cardstore"
	"burnboard/internal/kanban/dragdrop"
	"burnboard/internal/kanban/models"
	"burnboard/internal/kanban/operations"
	"burnboard/internal/kanban/persist"
	"burnboard/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

func setupBoard(t *testing.T, cards []models.Card) (BoardModel, *cardstore.Store, *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	if cards != nil {
		data, err := persist.Encode(cards)
		if err != nil {
			t.Fatalf("encode error: %v", err)
		}
		mem.Set(ctx, persist.DefaultKey, data)
	}
	store := cardstore.New(persist.NewRepository(mem, persist.DefaultKey))
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load error: %v", err)
	}
	m := NewBoardModel(store, "Kanban")
	m.SetSize(160, 40)
	return m, store, mem
}

func mouse(m BoardModel, action tea.MouseAction, button tea.MouseButton, x, y int) BoardModel {
	m, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return m
}

func press(m BoardModel, x, y int) BoardModel {
	return mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, x, y)
}

func motion(m BoardModel, x, y int) BoardModel {
	return mouse(m, tea.MouseActionMotion, tea.MouseButtonLeft, x, y)
}

func release(m BoardModel, x, y int) BoardModel {
	return mouse(m, tea.MouseActionRelease, tea.MouseButtonLeft, x, y)
}

func key(m BoardModel, k string) BoardModel {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ = m.Update(msg)
	return m
}

func ids(cards []models.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.ID
	}
	return strings.Join(parts, ",")
}

// grab presses on the middle row of a column's visible card
func grab(t *testing.T, m BoardModel, col, card int) BoardModel {
	t.Helper()
	c, ok := m.layout().column(col)
	if !ok {
		t.Fatalf("column %d not visible", col)
	}
	m = press(m, c.Box.X+3, c.cardTop(card)+1)
	if !m.Dragging() {
		t.Fatalf("expected drag to start on column %d card %d", col, card)
	}
	return m
}

func TestLayout_MarkersFollowRows(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())
	lay := m.layout()

	if len(lay.Columns) != 4 {
		t.Fatalf("expected 4 visible columns, got %d", len(lay.Columns))
	}

	backlog := lay.Columns[0]
	if len(backlog.Markers) != 5 {
		t.Fatalf("expected 5 markers, got %d", len(backlog.Markers))
	}
	for i, marker := range backlog.Markers {
		want := (backlog.ContentTop + i*slotRows) * UnitsPerRow
		if marker.Top != want {
			t.Errorf("marker %d: expected top %d, got %d", i, want, marker.Top)
		}
		if marker.Column != models.Backlog {
			t.Errorf("marker %d: expected backlog, got %s", i, marker.Column)
		}
	}
	if backlog.Markers[0].Before != "1" {
		t.Errorf("expected first marker before card 1, got %q", backlog.Markers[0].Before)
	}
	if end := backlog.Markers[4]; end.Before != models.EndOfColumn {
		t.Errorf("expected end marker, got %q", end.Before)
	}
	if backlog.AddRow != backlog.EndRow+1 {
		t.Errorf("expected add row right after end row")
	}
	if backlog.markerRow(4) != backlog.EndRow {
		t.Errorf("expected end marker on end row %d, got %d", backlog.EndRow, backlog.markerRow(4))
	}
}

func TestLayout_EmptyColumnPadding(t *testing.T) {
	m, _, _ := setupBoard(t, []models.Card{{ID: "a", Title: "A", Column: models.Todo}})
	lay := m.layout()

	backlog := lay.Columns[0]
	todo := lay.Columns[1]
	if backlog.ContentTop != todo.ContentTop+emptyPad {
		t.Errorf("expected empty column padded by %d, got %d vs %d", emptyPad, backlog.ContentTop, todo.ContentTop)
	}
	if len(backlog.Markers) != 1 || backlog.Markers[0].Before != models.EndOfColumn {
		t.Errorf("expected lone end marker, got %+v", backlog.Markers)
	}
}

func TestLayout_ScrolledMarkersKeepOrder(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())
	m.SetSize(160, 20)
	m.scrollColumn(0, 1)
	col := m.layout().Columns[0]

	if col.Scroll != 1 {
		t.Fatalf("expected scroll 1, got %d", col.Scroll)
	}
	if col.Fit != 2 {
		t.Fatalf("expected 2 slots, got %d", col.Fit)
	}
	for i := 1; i < len(col.Markers); i++ {
		if col.Markers[i].Top <= col.Markers[i-1].Top {
			t.Errorf("markers not increasing at %d", i)
		}
	}
	if col.markerRow(1) != col.ContentTop {
		t.Errorf("expected second card's marker at content top")
	}
	if col.hiddenBelow() != 1 {
		t.Errorf("expected 1 card below, got %d", col.hiddenBelow())
	}
}

func TestMouse_DragMovesCardBeforeTarget(t *testing.T) {
	m, store, mem := setupBoard(t, operations.DemoCards())
	writes := mem.Writes()

	m = grab(t, m, 0, 0)
	if m.session.CardID() != "1" {
		t.Fatalf("expected card 1 dragged, got %q", m.session.CardID())
	}

	doing, _ := m.layout().column(2)
	x, y := doing.Box.X+3, doing.markerRow(0)
	m = motion(m, x, y)
	h := m.session.Highlight()
	if h.Column != models.Doing || h.Marker != 0 {
		t.Errorf("expected first doing marker highlighted, got %+v", h)
	}

	m = release(m, x, y)
	if m.Dragging() {
		t.Fatal("expected drag to end on release")
	}
	if got := ids(store.Column(models.Doing)); got != "1,9,10,11,12" {
		t.Errorf("expected 1,9,10,11,12 in doing, got %s", got)
	}
	if got := ids(store.Column(models.Backlog)); got != "2,3,4" {
		t.Errorf("expected 2,3,4 in backlog, got %s", got)
	}
	if mem.Writes() != writes+1 {
		t.Errorf("expected one write, got %d", mem.Writes()-writes)
	}
	if m.session.Last() != dragdrop.Dropped {
		t.Errorf("expected dropped, got %s", m.session.Last())
	}
}

func TestMouse_DropOnEndRowAppends(t *testing.T) {
	m, store, _ := setupBoard(t, operations.DemoCards())

	m = grab(t, m, 0, 1)
	todo, _ := m.layout().column(1)
	m = motion(m, todo.Box.X+3, todo.EndRow)
	m = release(m, todo.Box.X+3, todo.EndRow)

	if got := ids(store.Column(models.Todo)); got != "5,6,7,8,2" {
		t.Errorf("expected card appended to todo, got %s", got)
	}
}

func TestMouse_DropLowerHalfOfCardInsertsAfter(t *testing.T) {
	m, store, _ := setupBoard(t, operations.DemoCards())

	m = grab(t, m, 3, 3)
	todo, _ := m.layout().column(1)
	// Bottom row of the first todo card resolves to the second marker
	y := todo.cardTop(0) + 2
	m = release(m, todo.Box.X+3, y)

	if got := ids(store.Column(models.Todo)); got != "5,16,6,7,8" {
		t.Errorf("expected 5,16,6,7,8, got %s", got)
	}
}

func TestMouse_SelfDropIsNoop(t *testing.T) {
	m, store, mem := setupBoard(t, operations.DemoCards())
	before := store.Cards()
	writes := mem.Writes()

	m = grab(t, m, 1, 0)
	todo, _ := m.layout().column(1)
	m = release(m, todo.Box.X+3, todo.markerRow(0))

	if ids(store.Cards()) != ids(before) {
		t.Errorf("expected no change, got %s", ids(store.Cards()))
	}
	if mem.Writes() != writes {
		t.Errorf("expected no write on self-drop")
	}
	if m.session.State() != dragdrop.Idle {
		t.Errorf("expected idle, got %s", m.session.State())
	}
}

func TestMouse_BurnBarrel(t *testing.T) {
	m, store, mem := setupBoard(t, operations.DemoCards())
	writes := mem.Writes()

	m = grab(t, m, 2, 1)
	barrel := m.layout().Barrel
	m = motion(m, barrel.X+2, barrel.Y+2)
	if !m.session.Highlight().Barrel {
		t.Fatal("expected barrel active")
	}
	if !strings.Contains(m.View(), "BURN IT") {
		t.Error("expected active barrel in view")
	}

	m = release(m, barrel.X+2, barrel.Y+2)
	if _, ok := store.Get("10"); ok {
		t.Error("expected card 10 burned")
	}
	if len(store.Cards()) != 15 {
		t.Errorf("expected 15 cards, got %d", len(store.Cards()))
	}
	if mem.Writes() != writes+1 {
		t.Errorf("expected one write, got %d", mem.Writes()-writes)
	}
	if strings.Contains(m.View(), "BURN IT") {
		t.Error("expected barrel idle after drop")
	}
}

func TestMouse_LeaveKeepsDragging(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())

	m = grab(t, m, 0, 0)
	doing, _ := m.layout().column(2)
	m = motion(m, doing.Box.X+3, doing.markerRow(1))
	m = motion(m, 155, 35)

	if !m.Dragging() {
		t.Fatal("expected drag to continue after leaving")
	}
	if m.session.Highlight() != dragdrop.NoHighlight {
		t.Errorf("expected highlights cleared, got %+v", m.session.Highlight())
	}
}

func TestMouse_ReleaseOutsideCancels(t *testing.T) {
	m, store, mem := setupBoard(t, operations.DemoCards())
	before := ids(store.Cards())
	writes := mem.Writes()

	m = grab(t, m, 0, 0)
	m = release(m, 155, 35)

	if m.session.Last() != dragdrop.Cancelled {
		t.Errorf("expected cancelled, got %s", m.session.Last())
	}
	if ids(store.Cards()) != before || mem.Writes() != writes {
		t.Error("expected board untouched on cancel")
	}
}

func TestMouse_EscCancelsDrag(t *testing.T) {
	m, store, _ := setupBoard(t, operations.DemoCards())
	before := ids(store.Cards())

	m = grab(t, m, 0, 0)
	m = key(m, "esc")
	if m.Dragging() {
		t.Fatal("expected esc to cancel the drag")
	}

	done, _ := m.layout().column(3)
	m = release(m, done.Box.X+3, done.markerRow(0))
	if ids(store.Cards()) != before {
		t.Error("expected release after cancel to do nothing")
	}
}

func TestMouse_PressOffCardDoesNotDrag(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())
	col, _ := m.layout().column(0)

	m = press(m, col.Box.X+3, col.markerRow(1))
	if m.Dragging() {
		t.Error("expected no drag from a marker row")
	}
	m = press(m, col.Box.X+3, col.Box.Y+1)
	if m.Dragging() {
		t.Error("expected no drag from the heading")
	}
}

func TestMouse_WheelScrollsColumn(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())
	m.SetSize(160, 20)
	col, _ := m.layout().column(1)

	m = mouse(m, tea.MouseActionPress, tea.MouseButtonWheelDown, col.Box.X+3, col.ContentTop)
	if m.columnScrollOffsets[1] != 1 {
		t.Errorf("expected scroll 1, got %d", m.columnScrollOffsets[1])
	}
	for i := 0; i < 5; i++ {
		m = mouse(m, tea.MouseActionPress, tea.MouseButtonWheelDown, col.Box.X+3, col.ContentTop)
	}
	if m.columnScrollOffsets[1] != 2 {
		t.Errorf("expected scroll clamped to 2, got %d", m.columnScrollOffsets[1])
	}
	m = mouse(m, tea.MouseActionPress, tea.MouseButtonWheelUp, col.Box.X+3, col.ContentTop)
	if m.columnScrollOffsets[1] != 1 {
		t.Errorf("expected scroll 1, got %d", m.columnScrollOffsets[1])
	}
}

func TestMouse_ClickAddCard(t *testing.T) {
	m, store, _ := setupBoard(t, operations.DemoCards())
	col, _ := m.layout().column(1)

	m = press(m, col.Box.X+3, col.AddRow)
	if m.mode != boardModeAddCard || m.addColumn != 1 {
		t.Fatalf("expected add form on todo, got mode %d column %d", m.mode, m.addColumn)
	}

	m = key(m, "   ")
	m = key(m, "enter")
	if len(store.Cards()) != 16 {
		t.Fatal("expected blank title rejected")
	}
	if m.mode != boardModeAddCard {
		t.Fatal("expected form to stay open after blank title")
	}

	m = key(m, "  Ship it ")
	m = key(m, "enter")
	todo := store.Column(models.Todo)
	if len(todo) != 5 {
		t.Fatalf("expected 5 todo cards, got %d", len(todo))
	}
	last := todo[len(todo)-1]
	if last.Title != "Ship it" {
		t.Errorf("expected trimmed title, got %q", last.Title)
	}
	if last.ID == "" {
		t.Error("expected generated id")
	}
	if m.mode != boardModeNormal {
		t.Error("expected form closed after adding")
	}
}

func TestKeyboard_MoveMode(t *testing.T) {
	m, store, _ := setupBoard(t, operations.DemoCards())

	m = key(m, "m")
	m = key(m, "l")
	if got := ids(store.Column(models.Todo)); got != "5,6,7,8,1" {
		t.Errorf("expected card 1 at end of todo, got %s", got)
	}
	if m.selectedCol != 1 || m.selectedCard != 4 {
		t.Errorf("expected cursor to follow card, got col %d card %d", m.selectedCol, m.selectedCard)
	}

	m = key(m, "m")
	m = key(m, "k")
	m = key(m, "k")
	if got := ids(store.Column(models.Todo)); got != "5,6,1,7,8" {
		t.Errorf("expected reorder up twice, got %s", got)
	}
	m = key(m, "j")
	if got := ids(store.Column(models.Todo)); got != "5,6,7,1,8" {
		t.Errorf("expected reorder down, got %s", got)
	}
}

func TestKeyboard_DeleteWithConfirmation(t *testing.T) {
	m, store, _ := setupBoard(t, operations.DemoCards())

	m = key(m, "j")
	m = key(m, "D")
	m = key(m, "n")
	if len(store.Cards()) != 16 {
		t.Fatal("expected cancel to keep the card")
	}

	m = key(m, "D")
	m = key(m, "y")
	if _, ok := store.Get("2"); ok {
		t.Error("expected card 2 burned")
	}
	if m.selectedCard != 1 {
		t.Errorf("expected cursor to stay in place, got %d", m.selectedCard)
	}
}

func TestFilter_OnlyMatchingCardsAreDroppable(t *testing.T) {
	cards := []models.Card{
		{ID: "a", Title: "write docs", Column: models.Todo},
		{ID: "b", Title: "fix login", Column: models.Todo},
		{ID: "c", Title: "write tests", Column: models.Todo},
		{ID: "d", Title: "deploy", Column: models.Backlog},
	}
	m, store, _ := setupBoard(t, cards)

	m = key(m, "/")
	m = key(m, "write")
	m = key(m, "enter")
	if !m.filterActive {
		t.Fatal("expected filter active")
	}
	if got := ids(m.getVisibleCards(1)); got != "a,c" {
		t.Fatalf("expected a,c visible, got %s", got)
	}

	todo, _ := m.layout().column(1)
	if len(todo.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(todo.Markers))
	}

	// Drop the backlog card before the second visible card
	m.session.Begin("d")
	m = release(m, todo.Box.X+3, todo.markerRow(1))
	if got := ids(store.Column(models.Todo)); got != "a,b,d,c" {
		t.Errorf("expected a,b,d,c, got %s", got)
	}

	m = key(m, "esc")
	if m.filterActive {
		t.Error("expected esc to clear the filter")
	}
}

func TestView_Rendering(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())
	view := m.View()

	for _, want := range []string{"Kanban", "Backlog", "TODO", "In progress", "Complete", "burn barrel", "+ Add card", "Este é o teste 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "━") {
		t.Error("expected no drop indicator while idle")
	}
}

func TestView_IndicatorOnMarkerRow(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())

	m = grab(t, m, 0, 0)
	doing, _ := m.layout().column(2)
	row := doing.markerRow(2)
	m = motion(m, doing.Box.X+3, row)

	lines := strings.Split(m.View(), "\n")
	if row >= len(lines) {
		t.Fatalf("view has %d lines, marker row %d", len(lines), row)
	}
	if !strings.Contains(lines[row], "━") {
		t.Errorf("expected indicator on row %d, got %q", row, lines[row])
	}
	if strings.Contains(lines[row-1], "━") || strings.Contains(lines[row+1], "━") {
		t.Error("expected a single indicator row")
	}
}

func TestHorizontalScroll(t *testing.T) {
	m, _, _ := setupBoard(t, operations.DemoCards())
	m.SetSize(60, 40)

	lay := m.layout()
	if lay.Last-lay.First != 1 {
		t.Fatalf("expected 1 visible column, got %d", lay.Last-lay.First)
	}

	m = key(m, "l")
	m = key(m, "l")
	m = key(m, "l")
	lay = m.layout()
	if lay.First != 3 || lay.Columns[0].Column != models.Done {
		t.Errorf("expected done column in view, got first %d", lay.First)
	}
	if lay.Columns[0].Box.X != boardLeft {
		t.Errorf("expected scrolled column at the left edge, got %d", lay.Columns[0].Box.X)
	}
}

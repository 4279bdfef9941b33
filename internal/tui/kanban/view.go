package kanban

import (
	"fmt"
	"strings"

	"burnboard/internal/kanban/dragdrop"
	"burnboard/internal/kanban/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m BoardModel) View() string {
	var s strings.Builder
	lay := m.layout()

	// Title
	title := titleStyle.Render(m.name)
	if lay.First > 0 {
		title += scrollIndicatorStyle.Render(fmt.Sprintf(" ◀ %d more", lay.First))
	}
	if hidden := len(models.Columns) - lay.Last; hidden > 0 {
		title += scrollIndicatorStyle.Render(fmt.Sprintf(" %d more ▶", hidden))
	}
	s.WriteString(title)
	s.WriteString("\n")

	// Filter bar
	if m.mode == boardModeFilter {
		s.WriteString("  / " + m.filterInput.View())
	} else if m.filterActive {
		s.WriteString("  " + filterIndicatorStyle.Render("Filter: "+m.filterQuery))
	}
	s.WriteString("\n")

	highlight := m.session.Highlight()
	views := make([]string, 0, len(lay.Columns)*2+2)
	views = append(views, strings.Repeat(" ", boardLeft))
	for _, col := range lay.Columns {
		views = append(views, m.renderColumn(col, lay.InnerHeight, highlight))
		views = append(views, strings.Repeat(" ", columnGap))
	}
	views = append(views, m.renderBarrel(highlight.Barrel))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	s.WriteString("\n")

	// Status message or error
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.session.Active():
		if card, ok := m.store.Get(m.session.CardID()); ok {
			s.WriteString(warningStyle.Render("Dragging: " + ansi.Truncate(card.Title, 40, "…")))
		}
	case m.message != "":
		s.WriteString(successStyle.Render(m.message))
	}
	s.WriteString("\n")

	// Mode-specific help
	switch {
	case m.session.Active():
		s.WriteString(helpStyle.Render("drop on a column to move • drop on the barrel to burn • esc: cancel"))
	case m.mode == boardModeMove:
		s.WriteString(helpStyle.Render("h/l: move card • j/k: reorder • esc: done"))
	case m.mode == boardModeConfirmDelete:
		s.WriteString(warningStyle.Render("Burn this card? (y/n)"))
	case m.mode == boardModeFilter:
		s.WriteString(helpStyle.Render("type to filter • enter: lock filter • esc: cancel"))
	case m.mode == boardModeAddCard:
		s.WriteString(helpStyle.Render("enter: add card • esc: cancel"))
	default:
		helpText := "hjkl: navigate • m/space: move • n: new • D: burn • /: filter • drag cards with the mouse • ?: help • q: quit"
		if m.filterActive {
			helpText = "hjkl: navigate • m/space: move • /: edit filter • esc: clear filter • q: quit"
		}
		s.WriteString(helpStyle.Render(helpText))
	}

	return s.String()
}

// renderColumn draws one column line by line so every row lands where the
// layout says it does.
func (m BoardModel) renderColumn(col columnLayout, innerHeight int, highlight dragdrop.Highlight) string {
	lines := make([]string, 0, innerHeight)
	dragging := m.session.Active()
	highlighted := -1
	if dragging && !highlight.Barrel && highlight.Column == col.Column {
		highlighted = highlight.Marker
	}

	// Heading
	heading := headingStyle(col.Column).Render(col.Column.Title())
	heading += countStyle.Render(fmt.Sprintf(" %d", len(col.Cards)))
	lines = append(lines, " "+heading)

	if col.Scroll > 0 {
		lines = append(lines, " "+scrollIndicatorStyle.Render(fmt.Sprintf("▲ %d more", col.Scroll)))
	} else {
		lines = append(lines, "")
	}
	if len(col.Cards) == 0 {
		lines = append(lines, "")
	}

	for i := col.Scroll; i < col.Scroll+col.rendered(); i++ {
		lines = append(lines, m.renderMarker(highlighted == i))
		card := strings.Split(m.renderCard(col.Index, i, col.Cards[i]), "\n")
		lines = append(lines, card...)
	}

	// End row: the trailing marker, or the first hidden card's marker
	endIdx := col.Scroll + col.rendered()
	switch {
	case highlighted == endIdx:
		lines = append(lines, m.renderMarker(true))
	case col.hiddenBelow() > 0:
		lines = append(lines, " "+scrollIndicatorStyle.Render(fmt.Sprintf("▼ %d more", col.hiddenBelow())))
	default:
		lines = append(lines, "")
	}

	// Add card row
	if m.mode == boardModeAddCard && m.addColumn == col.Index {
		lines = append(lines, addCardInputStyle.Render(m.addInput.View()))
		lines = append(lines, helpStyle.Render("enter: add • esc: close"))
	} else {
		lines = append(lines, addCardStyle.Render(" + Add card"))
	}

	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	lines = lines[:innerHeight]

	style := columnStyle
	switch {
	case dragging && highlight.Column == col.Column && !highlight.Barrel && highlight.Marker >= 0:
		style = activeColumnStyle
	case !dragging && col.Index == m.selectedCol:
		style = selectedColumnStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderMarker draws the drop indicator line, or a blank spacer
func (m BoardModel) renderMarker(active bool) string {
	if !active {
		return ""
	}
	return indicatorStyle.Render(strings.Repeat("━", columnWidth))
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card) string {
	title := ansi.Truncate(card.Title, cardInnerWidth-2, "…")

	style := cardStyle
	switch {
	case m.session.Active() && card.ID == m.session.CardID():
		style = draggedCardStyle
	case colIndex == m.selectedCol && cardIndex == m.selectedCard && m.mode == boardModeMove:
		style = moveSelectedCardStyle
	case colIndex == m.selectedCol && cardIndex == m.selectedCard && !m.session.Active():
		style = selectedCardStyle
	}
	return style.Render(title)
}

// renderBarrel draws the burn barrel, lit while a card hovers over it
func (m BoardModel) renderBarrel(active bool) string {
	content := "burn barrel\n\n▁▂▁▂▁▂"
	style := barrelStyle
	if active {
		content = "BURN IT\n\n▲▲▲▲▲▲"
		style = activeBarrelStyle
	}
	return strings.Repeat("\n", barrelTopOffset) + style.Render(content)
}

package kanban

import (
	"burnboard/internal/kanban/dragdrop"
	"burnboard/internal/kanban/models"
)

// UnitsPerRow converts terminal rows into the vertical units the drop
// locator works in, so that dragdrop.DistanceOffset spans two rows.
const UnitsPerRow = 25

const (
	columnWidth      = 26 // inner width, excluding the border
	columnOuterWidth = columnWidth + 2
	columnGap        = 1
	cardInnerWidth   = columnWidth - 2

	boardLeft  = 1 // left margin before the first column
	columnsTop = 2 // title row and filter row sit above the columns

	headerRows = 2 // heading plus one spacer row
	emptyPad   = 1 // extra top padding for an empty column
	slotRows   = 4 // marker row plus a three-row card box
	cardRows   = 3
	footerRows = 2 // end marker row plus the "+ Add card" row

	minColumnInner = headerRows + emptyPad + slotRows + footerRows + 1

	barrelWidth       = 12
	barrelHeight      = 4
	barrelOuterWidth  = barrelWidth + 2
	barrelOuterHeight = barrelHeight + 2
	barrelTopOffset   = 2

	// status line and help line under the columns
	reservedBottomRows = 2
)

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// layoutInput is everything the geometry depends on
type layoutInput struct {
	Width, Height    int
	HorizontalOffset int
	Cards            [][]models.Card // visible cards, indexed like models.Columns
	Scroll           []int
	AddingColumn     int // index of the column showing the add form, -1 when closed
}

// columnLayout is the on-screen geometry of one rendered column
type columnLayout struct {
	Index      int // index into models.Columns
	Column     models.Column
	Box        rect
	Cards      []models.Card
	Scroll     int
	Fit        int // card slots that fit in the viewport
	ContentTop int // row of the first marker
	Markers    []dragdrop.Marker
	EndRow     int
	AddRow     int
}

type boardLayout struct {
	InnerHeight int
	First, Last int // visible column range [First, Last)
	Columns     []columnLayout
	Barrel      rect
}

// columnInnerHeight is the number of rows inside a column border
func columnInnerHeight(height int) int {
	return max(minColumnInner, height-columnsTop-2-reservedBottomRows)
}

// visibleColumnCount is how many columns fit next to the burn barrel
func visibleColumnCount(width int) int {
	available := width - boardLeft - columnGap - barrelOuterWidth
	count := available / (columnOuterWidth + columnGap)
	return min(max(count, 1), len(models.Columns))
}

// slotCapacity is how many card slots fit in a column of the given inner
// height
func slotCapacity(innerHeight int, empty, adding bool) int {
	rows := innerHeight - headerRows - footerRows
	if empty {
		rows -= emptyPad
	}
	if adding {
		rows--
	}
	return max(0, rows/slotRows)
}

// computeLayout places every visible column, its markers and the burn
// barrel. Rendering and mouse hit-testing both read from the result, so a
// marker's Top is always the row its indicator is drawn on.
func computeLayout(in layoutInput) boardLayout {
	inner := columnInnerHeight(in.Height)
	count := visibleColumnCount(in.Width)
	first := min(max(in.HorizontalOffset, 0), len(models.Columns)-count)
	l := boardLayout{
		InnerHeight: inner,
		First:       first,
		Last:        first + count,
	}

	for pos, idx := 0, first; idx < l.Last; pos, idx = pos+1, idx+1 {
		var cards []models.Card
		if idx < len(in.Cards) {
			cards = in.Cards[idx]
		}
		scroll := 0
		if idx < len(in.Scroll) {
			scroll = in.Scroll[idx]
		}

		box := rect{
			X: boardLeft + pos*(columnOuterWidth+columnGap),
			Y: columnsTop,
			W: columnOuterWidth,
			H: inner + 2,
		}
		contentTop := box.Y + 1 + headerRows
		if len(cards) == 0 {
			contentTop += emptyPad
		}
		fit := slotCapacity(inner, len(cards) == 0, in.AddingColumn == idx)
		scroll = min(max(scroll, 0), max(0, len(cards)-fit))

		// Markers above and below the viewport keep virtual positions so
		// the locator sees one evenly spaced sequence.
		markers := make([]dragdrop.Marker, 0, len(cards)+1)
		for i, card := range cards {
			row := contentTop + (i-scroll)*slotRows
			markers = append(markers, dragdrop.Marker{
				Column: models.Columns[idx],
				Before: card.ID,
				Top:    row * UnitsPerRow,
			})
		}
		markers = append(markers, dragdrop.Marker{
			Column: models.Columns[idx],
			Before: models.EndOfColumn,
			Top:    (contentTop + (len(cards)-scroll)*slotRows) * UnitsPerRow,
		})

		rendered := min(len(cards)-scroll, fit)
		endRow := contentTop + rendered*slotRows
		l.Columns = append(l.Columns, columnLayout{
			Index:      idx,
			Column:     models.Columns[idx],
			Box:        box,
			Cards:      cards,
			Scroll:     scroll,
			Fit:        fit,
			ContentTop: contentTop,
			Markers:    markers,
			EndRow:     endRow,
			AddRow:     endRow + 1,
		})
	}

	l.Barrel = rect{
		X: boardLeft + count*(columnOuterWidth+columnGap),
		Y: columnsTop + barrelTopOffset,
		W: barrelOuterWidth,
		H: barrelOuterHeight,
	}
	return l
}

// pointerUnits converts a pointer row into locator units, measured from the
// middle of the cell
func pointerUnits(row int) int {
	return row*UnitsPerRow + UnitsPerRow/2
}

// columnAt returns the column under the pointer
func (l boardLayout) columnAt(x, y int) (columnLayout, bool) {
	for _, c := range l.Columns {
		if c.Box.contains(x, y) {
			return c, true
		}
	}
	return columnLayout{}, false
}

// column returns the layout of a column by its index in models.Columns
func (l boardLayout) column(idx int) (columnLayout, bool) {
	for _, c := range l.Columns {
		if c.Index == idx {
			return c, true
		}
	}
	return columnLayout{}, false
}

// rendered is the number of cards drawn in the viewport
func (c columnLayout) rendered() int {
	return min(len(c.Cards)-c.Scroll, c.Fit)
}

// hiddenBelow is the number of cards scrolled past the bottom
func (c columnLayout) hiddenBelow() int {
	return len(c.Cards) - c.Scroll - c.rendered()
}

// markerRow returns the row a marker would be drawn on
func (c columnLayout) markerRow(i int) int {
	return c.Markers[i].Top / UnitsPerRow
}

// cardAt returns the visible card index whose box covers row y
func (c columnLayout) cardAt(y int) (int, bool) {
	rel := y - c.ContentTop
	if rel < 0 {
		return 0, false
	}
	slot, part := rel/slotRows, rel%slotRows
	if part == 0 || slot >= c.rendered() {
		return 0, false
	}
	return c.Scroll + slot, true
}

// cardTop returns the first row of a visible card's box
func (c columnLayout) cardTop(i int) int {
	return c.ContentTop + (i-c.Scroll)*slotRows + 1
}

// Package dragdrop maps pointer positions to insertion slots and drives the
// drag session that turns a drop into a card store mutation.
package dragdrop

import (
	"math"

	"burnboard/internal/kanban/models"
)

// DistanceOffset biases the comparison point below each marker's top edge.
const DistanceOffset = 50

// Marker is one possible insertion point within a column. Before holds the id
// of the card the marker precedes, or models.EndOfColumn.
type Marker struct {
	Column models.Column
	Before string
	Top    int
}

// Target is the marker selected by Locate
type Target struct {
	Index  int
	Before string
}

// Locate returns the marker nearest to the pointer position y: the marker
// with the largest negative offset y - (top + DistanceOffset). When no marker
// qualifies the last marker wins. An empty marker set resolves to the end of
// the column with Index -1.
func Locate(y int, markers []Marker) Target {
	if len(markers) == 0 {
		return Target{Index: -1, Before: models.EndOfColumn}
	}

	last := len(markers) - 1
	best := Target{Index: last, Before: tag(markers[last])}
	closest := math.Inf(-1)

	for i, m := range markers {
		offset := float64(y - (m.Top + DistanceOffset))
		if offset < 0 && offset > closest {
			closest = offset
			best = Target{Index: i, Before: tag(m)}
		}
	}

	return best
}

func tag(m Marker) string {
	if m.Before == "" {
		return models.EndOfColumn
	}
	return m.Before
}

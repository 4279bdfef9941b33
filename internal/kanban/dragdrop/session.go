package dragdrop

import (
	"burnboard/internal/kanban/models"
	"burnboard/internal/kanban/operations"
)

// State is the phase of a drag session
type State int

const (
	Idle State = iota
	Dragging
	Dropped
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// OutcomeKind describes what a finished drag did to the card sequence
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeMoved
	OutcomeBurned
)

// Outcome is the result of a drop. Cards is the full replacement sequence and
// is only meaningful when Kind is not OutcomeNone.
type Outcome struct {
	Kind   OutcomeKind
	CardID string
	Cards  []models.Card
}

// Changed reports whether the outcome must be applied to the card store
func (o Outcome) Changed() bool {
	return o.Kind != OutcomeNone
}

// Highlight is the visual state of the drop targets during a drag
type Highlight struct {
	Column models.Column
	Marker int // index into the column's markers, -1 when none
	Barrel bool
}

// NoHighlight clears every drop target
var NoHighlight = Highlight{Marker: -1}

// Session tracks one drag gesture from pick-up to drop or cancel. The zero
// value is an idle session.
type Session struct {
	state     State
	last      State
	cardID    string
	highlight Highlight
}

// NewSession returns an idle session
func NewSession() *Session {
	return &Session{highlight: NoHighlight}
}

// State returns the current phase
func (s *Session) State() State {
	return s.state
}

// Last returns how the previous session ended: Dropped, Cancelled, or Idle
// when no session has finished yet
func (s *Session) Last() State {
	return s.last
}

// Active reports whether a card is currently being dragged
func (s *Session) Active() bool {
	return s.state == Dragging
}

// CardID returns the id of the dragged card, empty when idle
func (s *Session) CardID() string {
	return s.cardID
}

// Highlight returns the drop target currently highlighted
func (s *Session) Highlight() Highlight {
	if s.state != Dragging {
		return NoHighlight
	}
	return s.highlight
}

// Begin starts dragging the card with the given id
func (s *Session) Begin(cardID string) bool {
	if cardID == "" || s.state == Dragging {
		return false
	}
	s.state = Dragging
	s.cardID = cardID
	s.highlight = NoHighlight
	return true
}

// OverColumn recomputes the nearest marker for the pointer position. Every
// call starts from scratch, discarding any earlier highlight.
func (s *Session) OverColumn(column models.Column, y int, markers []Marker) Highlight {
	if s.state != Dragging {
		return NoHighlight
	}
	target := Locate(y, markers)
	s.highlight = Highlight{Column: column, Marker: target.Index}
	return s.highlight
}

// OverBarrel activates the burn barrel
func (s *Session) OverBarrel() Highlight {
	if s.state != Dragging {
		return NoHighlight
	}
	s.highlight = Highlight{Marker: -1, Barrel: true}
	return s.highlight
}

// Leave clears highlights after the pointer left every droppable region.
// The session keeps dragging.
func (s *Session) Leave() {
	s.highlight = NoHighlight
}

// DropOnColumn finishes the drag over a column. The returned outcome holds
// the reordered sequence, or OutcomeNone for a self-drop or a stale target.
func (s *Session) DropOnColumn(cards []models.Card, column models.Column, y int, markers []Marker) Outcome {
	if s.state != Dragging {
		return Outcome{}
	}
	id := s.cardID
	s.finish(Dropped)

	target := Locate(y, markers)
	result, changed := operations.Move(cards, id, column, target.Before)
	if !changed {
		return Outcome{CardID: id}
	}
	return Outcome{Kind: OutcomeMoved, CardID: id, Cards: result}
}

// DropOnBarrel finishes the drag over the burn barrel, deleting the card
func (s *Session) DropOnBarrel(cards []models.Card) Outcome {
	if s.state != Dragging {
		return Outcome{}
	}
	id := s.cardID
	s.finish(Dropped)

	if models.Find(cards, id) == -1 {
		return Outcome{CardID: id}
	}
	return Outcome{Kind: OutcomeBurned, CardID: id, Cards: operations.Remove(cards, id)}
}

// Cancel abandons the drag without touching the card sequence
func (s *Session) Cancel() {
	if s.state != Dragging {
		return
	}
	s.finish(Cancelled)
}

// finish records how the session ended and returns it to idle
func (s *Session) finish(terminal State) {
	s.last = terminal
	s.state = Idle
	s.cardID = ""
	s.highlight = NoHighlight
}

package models

// EndOfColumn is the marker tag meaning "insert at the end of the column".
const EndOfColumn = "-1"

// Card represents a single work item on the board
type Card struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Column Column `json:"column"`
}

// Find returns the index of the card with the given id, or -1
func Find(cards []Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

// InColumn returns the cards belonging to column, in board order
func InColumn(cards []Card, column Column) []Card {
	result := []Card{}
	for _, c := range cards {
		if c.Column == column {
			result = append(result, c)
		}
	}
	return result
}

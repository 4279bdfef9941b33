package models

import "strings"

// Column identifies one of the four fixed workflow stages
type Column string

const (
	Backlog Column = "backlog"
	Todo    Column = "todo"
	Doing   Column = "doing"
	Done    Column = "done"
)

// Columns lists every column in display order
var Columns = []Column{Backlog, Todo, Doing, Done}

// Title returns the column heading shown on the board
func (c Column) Title() string {
	switch c {
	case Backlog:
		return "Backlog"
	case Todo:
		return "TODO"
	case Doing:
		return "In progress"
	case Done:
		return "Complete"
	}
	return string(c)
}

// Valid reports whether c is one of the known columns
func (c Column) Valid() bool {
	for _, col := range Columns {
		if col == c {
			return true
		}
	}
	return false
}

// Index returns the display position of the column, or -1
func (c Column) Index() int {
	for i, col := range Columns {
		if col == c {
			return i
		}
	}
	return -1
}

// ParseColumn resolves a column from its key or its title (case-insensitive)
func ParseColumn(s string) (Column, bool) {
	s = strings.TrimSpace(s)
	for _, col := range Columns {
		if strings.EqualFold(string(col), s) || strings.EqualFold(col.Title(), s) {
			return col, true
		}
	}
	return "", false
}

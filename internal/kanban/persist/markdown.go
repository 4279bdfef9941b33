package persist

import (
	"bytes"
	"strings"

	"burnboard/internal/kanban/models"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const cardAnchorPrefix = "#card-"

// WriteMarkdown renders the board as a markdown document: one H2 section per
// column and one link per card, in board order.
func WriteMarkdown(name string, cards []models.Card) []byte {
	var buf bytes.Buffer

	buf.WriteString("# ")
	buf.WriteString(name)
	buf.WriteString("\n\n")

	for _, column := range models.Columns {
		buf.WriteString("## ")
		buf.WriteString(column.Title())
		buf.WriteString("\n\n")

		columnCards := models.InColumn(cards, column)
		for _, card := range columnCards {
			buf.WriteString("- [")
			buf.WriteString(escapeMarkdown(card.Title))
			buf.WriteString("](")
			buf.WriteString(cardAnchorPrefix)
			buf.WriteString(card.ID)
			buf.WriteString(")\n")
		}
		if len(columnCards) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes()
}

// ReadMarkdown parses a board document. H2 headings select the column by key
// or title; every list item below a known column becomes a card. Items
// linking to #card-<id> keep that id, anything else gets a fresh one.
func ReadMarkdown(content []byte) (string, []models.Card) {
	reader := text.NewReader(content)
	parser := goldmark.DefaultParser()
	doc := parser.Parse(reader)

	var (
		name    string
		current models.Column
		known   bool
		cards   = []models.Card{}
		seen    = map[string]bool{}
	)

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := string(node.Text(content))
			if node.Level == 1 {
				name = headingText
			} else if node.Level == 2 {
				current, known = models.ParseColumn(headingText)
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if !known {
				return ast.WalkSkipChildren, nil
			}
			card, ok := cardFromItem(node, content, current)
			if ok && !seen[card.ID] {
				seen[card.ID] = true
				cards = append(cards, card)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return name, cards
}

func cardFromItem(item *ast.ListItem, source []byte, column models.Column) (models.Card, bool) {
	var link *ast.Link
	ast.Walk(item, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := n.(*ast.Link); entering && ok {
			link = l
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	var title, id string
	if link != nil {
		title = string(link.Text(source))
		dest := string(link.Destination)
		if strings.HasPrefix(dest, cardAnchorPrefix) {
			id = strings.TrimPrefix(dest, cardAnchorPrefix)
		}
	} else {
		title = string(item.Text(source))
	}

	title = strings.Join(strings.Fields(string(util.UnescapePunctuations([]byte(title)))), " ")
	if title == "" {
		return models.Card{}, false
	}
	if id == "" {
		id = uuid.NewString()
	}

	return models.Card{ID: id, Title: title, Column: column}, true
}

func escapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_[]<>!&#|~", r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

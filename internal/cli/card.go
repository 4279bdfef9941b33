package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"burnboard/internal/kanban/models"
	"burnboard/internal/kanban/operations"
	"burnboard/internal/kanban/persist"
)

// ErrCardNotFound is returned when no card matches an id
var ErrCardNotFound = errors.New("card not found")

func runList(args []string, env Env) int {
	columns := models.Columns
	if len(args) > 0 {
		column, ok := models.ParseColumn(strings.Join(args, " "))
		if !ok {
			fmt.Fprintf(env.Err, "Error: %v: %s\n", operations.ErrUnknownColumn, strings.Join(args, " "))
			return 1
		}
		columns = []models.Column{column}
	}

	total := 0
	for i, column := range columns {
		cards := env.Store.Column(column)
		if i > 0 {
			fmt.Fprintln(env.Out)
		}
		fmt.Fprintf(env.Out, "%s (%d)\n", column.Title(), len(cards))
		for _, c := range cards {
			printCard(env.Out, c)
		}
		total += len(cards)
	}

	fmt.Fprintf(env.Out, "\n%d card(s)\n", total)
	return 0
}

func runAdd(ctx context.Context, args []string, env Env) int {
	if len(args) < 2 {
		fmt.Fprintln(env.Err, "Error: column and title required")
		fmt.Fprintln(env.Err, `Usage: burnboard add <column> "Card title"`)
		return 1
	}

	column, ok := models.ParseColumn(args[0])
	if !ok {
		fmt.Fprintf(env.Err, "Error: %v: %s\n", operations.ErrUnknownColumn, args[0])
		return 1
	}

	card, err := operations.NewCard(strings.Join(args[1:], " "), column)
	if err != nil {
		fmt.Fprintf(env.Err, "Error adding card: %v\n", err)
		return 1
	}

	if err := env.Store.Insert(ctx, card); err != nil {
		fmt.Fprintf(env.Err, "Error saving board: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Added: %s\n", card.Title)
	fmt.Fprintf(env.Out, "ID: %s\n", card.ID)
	return 0
}

func runRemove(ctx context.Context, args []string, env Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Err, "Error: card ID required")
		fmt.Fprintln(env.Err, "Usage: burnboard rm <card-id>")
		return 1
	}

	card, err := findCardByPartialID(env.Store.Cards(), args[0])
	if err != nil {
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return 1
	}

	if err := env.Store.Remove(ctx, card.ID); err != nil {
		fmt.Fprintf(env.Err, "Error saving board: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Burned: %s\n", card.Title)
	return 0
}

func runMove(ctx context.Context, args []string, env Env) int {
	if len(args) < 2 {
		fmt.Fprintln(env.Err, "Error: card ID and column required")
		fmt.Fprintln(env.Err, "Usage: burnboard mv <card-id> <column> [before-id]")
		return 1
	}

	cards := env.Store.Cards()
	card, err := findCardByPartialID(cards, args[0])
	if err != nil {
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return 1
	}

	column, ok := models.ParseColumn(args[1])
	if !ok {
		fmt.Fprintf(env.Err, "Error: %v: %s\n", operations.ErrUnknownColumn, args[1])
		return 1
	}

	before := models.EndOfColumn
	if len(args) > 2 {
		target, err := findCardByPartialID(cards, args[2])
		if err != nil {
			fmt.Fprintf(env.Err, "Error: %v\n", err)
			return 1
		}
		if target.Column != column {
			fmt.Fprintf(env.Err, "Error: card %s is not in %s\n", target.ID, column.Title())
			return 1
		}
		before = target.ID
	}

	changed, err := env.Store.Move(ctx, card.ID, column, before)
	if err != nil {
		fmt.Fprintf(env.Err, "Error saving board: %v\n", err)
		return 1
	}
	if !changed {
		fmt.Fprintf(env.Out, "Unchanged: %s\n", card.Title)
		return 0
	}

	fmt.Fprintf(env.Out, "Moved: %s -> %s\n", card.Title, column.Title())
	return 0
}

func runExport(args []string, env Env) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	format := fs.String("format", "json", "Output format: json or markdown")
	output := fs.String("o", "", "Write to file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	var data []byte
	switch strings.ToLower(*format) {
	case "json":
		encoded, err := persist.Encode(env.Store.Cards())
		if err != nil {
			fmt.Fprintf(env.Err, "Error encoding board: %v\n", err)
			return 1
		}
		data = []byte(encoded + "\n")
	case "markdown", "md":
		data = persist.WriteMarkdown(env.BoardName, env.Store.Cards())
	default:
		fmt.Fprintf(env.Err, "Error: unknown format %q\n", *format)
		return 1
	}

	if *output == "" {
		env.Out.Write(data)
		return 0
	}

	if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintf(env.Err, "Error writing %s: %v\n", *output, err)
		return 1
	}
	fmt.Fprintf(env.Out, "Exported %d card(s) to %s\n", len(env.Store.Cards()), *output)
	return 0
}

func runImport(ctx context.Context, args []string, env Env) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	appendCards := fs.Bool("append", false, "Append to the board instead of replacing it")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(env.Err, "Error: file required")
		fmt.Fprintln(env.Err, "Usage: burnboard import [--append] <file>")
		return 1
	}

	path := fs.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(env.Err, "Error reading %s: %v\n", path, err)
		return 1
	}

	cards, err := decodeImport(path, content)
	if err != nil {
		fmt.Fprintf(env.Err, "Error importing %s: %v\n", path, err)
		return 1
	}

	if *appendCards {
		merged := env.Store.Cards()
		for _, c := range cards {
			if models.Find(merged, c.ID) != -1 {
				c.ID = operations.NewID()
			}
			merged = operations.Insert(merged, c)
		}
		cards = merged
	}

	if err := env.Store.Replace(ctx, cards); err != nil {
		fmt.Fprintf(env.Err, "Error saving board: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Imported %d card(s)\n", len(cards))
	return 0
}

// decodeImport reads Markdown files by extension and everything else as JSON
func decodeImport(path string, content []byte) ([]models.Card, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		_, cards := persist.ReadMarkdown(content)
		return cards, nil
	default:
		return persist.Decode(string(content))
	}
}

func runSeed(ctx context.Context, args []string, env Env) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	force := fs.Bool("force", false, "Replace a non-empty board")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if len(env.Store.Cards()) > 0 && !*force {
		fmt.Fprintln(env.Err, "Error: board is not empty, use --force to replace it")
		return 1
	}

	cards := operations.DemoCards()
	if err := env.Store.Replace(ctx, cards); err != nil {
		fmt.Fprintf(env.Err, "Error saving board: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.Out, "Seeded %d card(s)\n", len(cards))
	return 0
}

func printCard(w io.Writer, c models.Card) {
	fmt.Fprintf(w, "  [%s] %s\n", shortID(c.ID), c.Title)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func findCardByPartialID(cards []models.Card, partialID string) (models.Card, error) {
	var matches []models.Card
	for _, c := range cards {
		if c.ID == partialID {
			return c, nil
		}
		if len(partialID) >= 4 && strings.HasPrefix(c.ID, partialID) {
			matches = append(matches, c)
		}
	}

	if len(matches) == 0 {
		return models.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, partialID)
	}
	if len(matches) > 1 {
		return models.Card{}, fmt.Errorf("multiple cards match ID '%s', please be more specific", partialID)
	}

	return matches[0], nil
}

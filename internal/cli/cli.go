package cli

import (
	"context"
	"fmt"
	"io"

	"burnboard/internal/kanban/cardstore"
)

// Env carries what every command needs
type Env struct {
	Store     *cardstore.Store
	BoardName string
	Out       io.Writer
	Err       io.Writer
}

// Run executes the CLI with the given arguments. The store must already be
// loaded. It returns the process exit code.
func Run(ctx context.Context, args []string, env Env) int {
	if len(args) == 0 {
		printUsage(env.Err)
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls", "l":
		return runList(cmdArgs, env)
	case "add", "a":
		return runAdd(ctx, cmdArgs, env)
	case "rm", "burn", "del":
		return runRemove(ctx, cmdArgs, env)
	case "mv", "move":
		return runMove(ctx, cmdArgs, env)
	case "export":
		return runExport(cmdArgs, env)
	case "import":
		return runImport(ctx, cmdArgs, env)
	case "seed":
		return runSeed(ctx, cmdArgs, env)
	case "help", "-h", "--help":
		printUsage(env.Out)
		return 0
	default:
		fmt.Fprintf(env.Err, "Unknown command: %s\n", command)
		printUsage(env.Err)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `burnboard - Kanban board with drag and drop and a burn barrel

Usage: burnboard [flags] [command] [arguments]

Commands:
  list, ls [column]              List cards, optionally for one column
  add <column> <title...>        Add a card to the end of a column
  rm, burn <id>                  Burn (delete) a card
  mv <id> <column> [before-id]   Move a card, to the end unless before-id is given
  export [--format json|markdown] [-o file]
                                 Print or write the board
  import [--append] <file>       Replace the board with a JSON or Markdown export
  seed [--force]                 Load the demo board
  help                           Show this help message

Columns: backlog, todo, doing, done (or their titles)
Card ids may be shortened to a unique prefix of at least 4 characters.

Flags:
      --backend <name>   Storage backend: file, sqlite, s3, memory
      --data-dir <dir>   Data directory for the file and sqlite backends
      --key <key>        Storage key holding the board

Running burnboard without a command launches the interactive TUI.`)
}

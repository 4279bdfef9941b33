package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"burnboard/internal/cli"
	"burnboard/internal/config"
	"burnboard/internal/kanban/cardstore"
	"burnboard/internal/kanban/persist"
	"burnboard/internal/logs"
	"burnboard/internal/storage"
	"burnboard/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	// Parse CLI flags
	backendFlag := flag.String("backend", "", "Storage backend: file, sqlite, s3, memory")
	flag.StringVar(backendFlag, "b", "", "Storage backend (shorthand)")
	dataDirFlag := flag.String("data-dir", "", "Data directory for the file and sqlite backends")
	keyFlag := flag.String("key", "", "Storage key holding the board")
	ephemeralFlag := flag.Bool("ephemeral", false, "Keep the board in memory only")
	flag.Parse()

	cliFlags := config.CLIFlags{
		Backend: *backendFlag,
		DataDir: *dataDirFlag,
		Key:     *keyFlag,
	}
	if *ephemeralFlag {
		cliFlags.Backend = storage.BackendMemory
	}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	// Ensure data directory exists
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}

	code := run(cfg, flag.Args())
	logs.Close()
	os.Exit(code)
}

func run(cfg *config.Config, args []string) int {
	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s storage: %v\n", cfg.Backend, err)
		return 1
	}
	defer backend.Close()

	store := cardstore.New(persist.NewRepository(backend, cfg.Key))
	if err := store.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading board: %v\n", err)
		return 1
	}
	logs.Logger.Printf("Loaded %d cards from %s:%s", len(store.Cards()), cfg.Backend, cfg.Key)

	// Check for CLI subcommands
	if len(args) > 0 {
		return cli.Run(ctx, args, cli.Env{
			Store:     store,
			BoardName: cfg.BoardName,
			Out:       os.Stdout,
			Err:       os.Stderr,
		})
	}

	// TUI mode
	logs.Logger.Println("Starting app in TUI mode")
	appModel := tui.NewAppModel(cfg, store)
	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		return 1
	}
	return 0
}

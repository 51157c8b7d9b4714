package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/p6tools/p6view/internal/api"
	"github.com/p6tools/p6view/internal/cli"
	"github.com/p6tools/p6view/internal/db"
	"github.com/p6tools/p6view/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := api.LoadConfig()

	app := &cli.App{
		API:    api.NewClient(cfg),
		Config: cfg,
	}

	// Local recents store. Browsing must work even when it cannot be
	// opened (read-only home, missing sqlite support on the platform).
	dbPath := os.Getenv("P6VIEW_DB")
	if dbPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dbPath = filepath.Join(home, ".p6view", "p6view.db")
		}
	}
	if dbPath != "" {
		if database, err := db.OpenDB(dbPath); err == nil {
			defer database.Close()
			app.Recents = repository.NewSQLiteRecentRepo(database)
		}
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

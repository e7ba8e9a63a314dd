package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tudo/internal/config"
	"tudo/internal/db"
	"tudo/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		dbName     string
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:           "tudo",
		Short:         "A terminal todo list manager",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dbName, configPath)
		},
	}
	rootCmd.Flags().StringVar(&dbName, "db", "", "named database from the config file")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbName, configPath string) error {
	defaultDB, err := db.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}

	if configPath == "" {
		configPath, err = config.Path()
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
	}

	cfg, err := config.LoadOrInit(configPath, defaultDB)
	if err != nil {
		return err
	}
	target, err := cfg.Resolve(dbName)
	if err != nil {
		return err
	}

	database, err := db.Open(target.Path)
	if err != nil {
		return fmt.Errorf("initializing database %s: %w", target.Path, err)
	}
	defer database.Close()

	app := ui.NewApp(database)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

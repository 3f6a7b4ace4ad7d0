package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sleeperstats/leaguecrawl/internal/config"
	"github.com/sleeperstats/leaguecrawl/internal/database"
	"github.com/spf13/cobra"
)

//go:embed templates/leaguecrawl.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new leaguecrawl configuration file",
		Long: `Init creates a new .leaguecrawl configuration file in the current directory.

The generated file includes:
- Default settings for crawl size and request pacing
- Commented examples for seed usernames
- Documentation for all available options

Examples:
  # Create .leaguecrawl in current directory
  leaguecrawl init

  # Create config file at a specific path
  leaguecrawl init -o myconfig.yaml

  # Force overwrite existing file
  leaguecrawl init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/leaguecrawl.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	// Bootstrap the database so the schema exists before the first crawl.
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized database: %s\n", db.Path())
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Seed usernames for fresh crawls")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Crawl size limits and request pacing")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The export sample-size threshold")

	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new catalog",
	Long: `Initialize a new catalog in the current directory.

Creates:
  .shelf/
  ├── catalog.json    # Empty catalog: []
  └── config.json     # Default config`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := getStartingDirectory()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a shelf catalog")
	}

	if err := os.MkdirAll(config.ShelfPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating %s directory: %v", config.ShelfDir, err)
	}

	if _, err := catalog.Open(config.CatalogPath(root), catalog.WithLogger(logger)); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.CatalogFile, err)
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.ConfigFile, err)
	}

	if humanOutput {
		fmt.Printf("Initialized shelf catalog in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   config.CatalogPath(root),
		})
	}

	return nil
}

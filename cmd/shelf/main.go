// Package main provides the shelf CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/config"
	"github.com/matsen/shelf/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// catalogFlag is an explicit catalog file from --catalog
	catalogFlag string
	// logLevelFlag overrides the global config log_level
	logLevelFlag string

	logger = logging.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Flat-file catalog for books, e-books and audiobooks",
	Long: `shelf manages a catalog of books, e-books and audiobooks stored in a
single JSON file.

The catalog is found from --catalog, the SHELF_CATALOG environment
variable, library_path in ~/.config/shelf/config.yml, or a .shelf/
directory in the current directory or one of its parents.

All commands output JSON by default; pass --human for tables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Path to the catalog JSON file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Version = Version
}

// setup loads .env and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	level := logLevelFlag
	if level == "" {
		level = config.GetLogLevel()
	}

	l, err := logging.New(logging.Options{
		Level:  level,
		Format: config.GetLogFormat(),
	})
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)
	return nil
}

// catalogTarget is a resolved catalog file. Root is the directory holding
// .shelf/ when the catalog lives in one, and empty otherwise.
type catalogTarget struct {
	Path string
	Root string
}

// errNoCatalog is returned by resolveCatalog when nothing names a catalog.
var errNoCatalog = errors.New("no catalog found")

func newCatalogTarget(path string) (catalogTarget, error) {
	abs, err := filepath.Abs(config.ExpandPath(path))
	if err != nil {
		return catalogTarget{}, fmt.Errorf("resolving catalog path: %w", err)
	}

	target := catalogTarget{Path: abs}
	dir := filepath.Dir(abs)
	if filepath.Base(dir) == config.ShelfDir {
		target.Root = filepath.Dir(dir)
	}
	return target, nil
}

// getStartingDirectory returns the directory to start searching for a
// .shelf directory. SHELF_ROOT overrides the working directory.
func getStartingDirectory() (string, error) {
	if root := os.Getenv("SHELF_ROOT"); root != "" {
		return root, nil
	}
	return os.Getwd()
}

// resolveCatalog picks the catalog file in order: the --catalog flag,
// SHELF_CATALOG, global library_path, then a .shelf directory found by
// walking up from the starting directory.
func resolveCatalog(flagPath string) (catalogTarget, error) {
	if flagPath != "" {
		return newCatalogTarget(flagPath)
	}

	if env := os.Getenv("SHELF_CATALOG"); env != "" {
		return newCatalogTarget(env)
	}

	if lib := config.GetLibraryPath(); lib != "" {
		if err := config.ValidateLibraryPath(lib); err != nil {
			return catalogTarget{}, err
		}
		return newCatalogTarget(lib)
	}

	start, err := getStartingDirectory()
	if err != nil {
		return catalogTarget{}, fmt.Errorf("getting current directory: %w", err)
	}

	root, err := config.FindRepository(start)
	if err != nil {
		return catalogTarget{}, fmt.Errorf("%w: %v", errNoCatalog, err)
	}
	return catalogTarget{Path: config.CatalogPath(root), Root: root}, nil
}

// mustResolveCatalog resolves the catalog, exits on error.
func mustResolveCatalog() catalogTarget {
	target, err := resolveCatalog(catalogFlag)
	if err != nil {
		if errors.Is(err, errNoCatalog) {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return target
}

// mustOpenStore resolves, opens and loads the catalog, exits on error.
func mustOpenStore() (*catalog.Store, catalogTarget) {
	target := mustResolveCatalog()

	store, err := catalog.Open(target.Path, catalog.WithLogger(logger))
	if err != nil {
		exitWithError(ExitError, "opening catalog: %v", err)
	}
	if err := store.Load(); err != nil {
		exitWithError(ExitError, "loading catalog: %v", err)
	}
	return store, target
}

// mustLoadConfig loads the per-catalog config, exits on error. Catalogs
// outside a .shelf directory use the defaults.
func mustLoadConfig(target catalogTarget) *config.Config {
	if target.Root == "" {
		return config.Default()
	}
	cfg, err := config.Load(target.Root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

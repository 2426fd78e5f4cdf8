package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/shelf/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set catalog configuration values",
	Long: `Get or set configuration values stored in .shelf/config.json.

Usage:
  shelf config                              # Show all config
  shelf config default-sort                 # Get specific value
  shelf config default-sort author          # Set value
  shelf config allow-duplicate-isbn true    # Allow duplicate ISBNs

Keys:
  allow-duplicate-isbn  Let 'shelf add' store a second item with an existing ISBN
  default-sort          Sort for 'shelf list': title, author, or empty for insertion order`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	target := mustResolveCatalog()
	if target.Root == "" {
		exitWithError(ExitConfigError, "catalog %s is not inside a %s directory; it has no config", target.Path, config.ShelfDir)
	}
	cfg := mustLoadConfig(target)

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("allow-duplicate-isbn: %t\n", cfg.AllowDuplicateISBN)
			fmt.Printf("default-sort:         %s\n", cfg.DefaultSort)
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		value, err := configValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := cfg.Save(target.Root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

// normalizeKey accepts both snake_case and kebab-case keys.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "allow-duplicate-isbn":
		return strconv.FormatBool(cfg.AllowDuplicateISBN), nil
	case "default-sort":
		return cfg.DefaultSort, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "allow-duplicate-isbn":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("allow-duplicate-isbn must be true or false, got %q", value)
		}
		cfg.AllowDuplicateISBN = b
	case "default-sort":
		if err := config.ValidateDefaultSort(value); err != nil {
			return err
		}
		cfg.DefaultSort = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

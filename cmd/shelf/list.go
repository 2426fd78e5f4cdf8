package main

import (
	"fmt"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/config"
	"github.com/matsen/shelf/internal/media"
	"github.com/spf13/cobra"
)

var (
	listAuthor    string
	listAvailable bool
	listSort      string
)

func init() {
	listCmd.Flags().StringVar(&listAuthor, "author", "", "Only items by this author (case-insensitive)")
	listCmd.Flags().BoolVar(&listAvailable, "available", false, "Only items that are not checked out")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by title or author (default from config default_sort)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	Long: `List catalog items in insertion order, optionally filtered and sorted.

Examples:
  shelf list
  shelf list --author "J.R.R. Tolkien" --available
  shelf list --sort title --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listOptions selects and orders items for the list command.
type listOptions struct {
	Author    string
	Available bool
	Sort      string // "", title or author
}

func runList(cmd *cobra.Command, args []string) error {
	store, target := mustOpenStore()

	sortBy := listSort
	if sortBy == "" {
		sortBy = mustLoadConfig(target).DefaultSort
	}
	if err := config.ValidateDefaultSort(sortBy); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	items := selectItems(store, listOptions{
		Author:    listAuthor,
		Available: listAvailable,
		Sort:      sortBy,
	})
	outputItems(items)
	return nil
}

// selectItems applies the author and availability filters to the
// ordering chosen by opts.Sort.
func selectItems(store *catalog.Store, opts listOptions) []media.Item {
	var ordered []media.Item
	switch opts.Sort {
	case "title":
		ordered = store.SortByTitle()
	case "author":
		ordered = store.SortByAuthor()
	default:
		ordered = store.Items()
	}

	var keep []map[media.Item]bool
	if opts.Author != "" {
		keep = append(keep, itemSet(store.ItemsByAuthor(opts.Author)))
	}
	if opts.Available {
		keep = append(keep, itemSet(store.AvailableItems()))
	}

	out := make([]media.Item, 0, len(ordered))
outer:
	for _, item := range ordered {
		for _, set := range keep {
			if !set[item] {
				continue outer
			}
		}
		out = append(out, item)
	}
	return out
}

// itemSet indexes items by identity. Duplicate copies of an ISBN are
// distinct entries.
func itemSet(items []media.Item) map[media.Item]bool {
	set := make(map[media.Item]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search items by title",
	Long: `Search items whose title contains the query, ignoring case.

Example:
  shelf search gatsby`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, _ := mustOpenStore()

	results := store.SearchByTitle(args[0])
	logger.Debug("title search", "query", args[0], "matches", len(results))

	if humanOutput && len(results) == 0 {
		fmt.Printf("No items match %q.\n", args[0])
		return nil
	}
	outputItems(results)
	return nil
}

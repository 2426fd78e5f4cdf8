package main

import (
	"fmt"
	"strings"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/media"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(removeCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <isbn>",
	Short: "Get an item by ISBN",
	Long: `Get the first item with the given ISBN.

Example:
  shelf get 978-0743273565`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	store, _ := mustOpenStore()

	isbn := args[0]
	item, found := store.Find(isbn)
	if !found {
		exitWithItemError(fmt.Errorf("%w: %s", catalog.ErrNotFound, isbn))
	}

	if humanOutput {
		printItemDetail(item)
	} else {
		outputJSON(itemResponse(item))
	}
	return nil
}

func printItemDetail(item media.Item) {
	fmt.Println(item.Title())
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Type:       %s\n", item.Kind())
	fmt.Printf("Author:     %s\n", item.Author())
	fmt.Printf("Published:  %s\n", item.PublicationDate())
	fmt.Printf("ISBN:       %s\n", item.ISBN())
	fmt.Printf("Available:  %s\n", yesNo(item.IsAvailable()))

	switch v := item.(type) {
	case *media.Book:
		fmt.Printf("Pages:      %d\n", v.PageCount())
		fmt.Printf("Condition:  %s\n", v.Condition())
	case *media.EBook:
		fmt.Printf("Format:     %s\n", strings.ToUpper(v.FormatType()))
		fmt.Printf("Size:       %g MB\n", v.FileSizeMB())
		fmt.Printf("URL:        %s\n", v.DownloadURL())
	case *media.Audiobook:
		fmt.Printf("Narrator:   %s\n", v.Narrator())
		fmt.Printf("Duration:   %s\n", media.FormatDuration(v.DurationMinutes()))
		fmt.Printf("Format:     %s\n", strings.ToUpper(v.AudioFormat()))
	}
}

var removeCmd = &cobra.Command{
	Use:   "remove <isbn>",
	Short: "Remove every item with an ISBN",
	Long: `Remove every item with the given ISBN and report how many were removed.

Exits with code 4 when no item has the ISBN.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

// RemoveResponse is the response for the remove command.
type RemoveResponse struct {
	ISBN    string `json:"isbn"`
	Removed int    `json:"removed"`
}

func runRemove(cmd *cobra.Command, args []string) error {
	store, _ := mustOpenStore()

	isbn := args[0]
	removed, err := store.Remove(isbn)
	if err != nil {
		exitWithError(ExitError, "removing %s: %v", isbn, err)
	}
	if removed == 0 {
		exitWithItemError(fmt.Errorf("%w: %s", catalog.ErrNotFound, isbn))
	}

	if humanOutput {
		fmt.Printf("Removed %d item(s) with ISBN %s\n", removed, isbn)
	} else {
		outputJSON(RemoveResponse{ISBN: isbn, Removed: removed})
	}
	return nil
}

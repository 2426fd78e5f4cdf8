package main

import (
	"fmt"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/media"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(checkinCmd)
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout <isbn>",
	Short: "Check out an item",
	Long: `Mark the first available copy with the given ISBN as checked out.

Exits with code 3 when every copy is already checked out and 4 when no
item has the ISBN.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(args[0], "checked_out", (*catalog.Store).CheckOut)
	},
}

var checkinCmd = &cobra.Command{
	Use:   "checkin <isbn>",
	Short: "Check in an item",
	Long: `Mark the first checked-out copy with the given ISBN as available.

Exits with code 3 when no copy is checked out and 4 when no item has the
ISBN.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(args[0], "checked_in", (*catalog.Store).CheckIn)
	},
}

// TransitionResponse is the response for checkout and checkin.
type TransitionResponse struct {
	Status string       `json:"status"`
	Item   ItemResponse `json:"item"`
}

func runTransition(isbn, status string, apply func(*catalog.Store, string) error) error {
	store, _ := mustOpenStore()

	// The store changes the first copy still in the starting state.
	var target media.Item
	startAvailable := status == "checked_out"
	for _, item := range store.Items() {
		if item.ISBN() == isbn && item.IsAvailable() == startAvailable {
			target = item
			break
		}
	}

	if err := apply(store, isbn); err != nil {
		exitWithItemError(err)
	}
	changed := itemResponse(target)

	if humanOutput {
		fmt.Printf("%s: %s\n", status, changed.Description)
	} else {
		outputJSON(TransitionResponse{Status: status, Item: changed})
	}
	return nil
}

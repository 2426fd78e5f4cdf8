package main

import (
	"fmt"
	"os"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/media"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show item counts per author, per type and overall.

Authors are listed in the order they first appear in the catalog.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	Total     int                   `json:"total"`
	Available int                   `json:"available"`
	ByType    map[string]int        `json:"by_type"`
	Authors   []catalog.AuthorCount `json:"authors"`
}

func buildStats(store *catalog.Store) StatsResponse {
	byType := make(map[string]int, len(media.Kinds))
	for _, k := range media.Kinds {
		byType[string(k)] = 0
	}
	for _, item := range store.Items() {
		byType[string(item.Kind())]++
	}

	authors := store.AuthorStats()
	if authors == nil {
		authors = []catalog.AuthorCount{}
	}

	return StatsResponse{
		Total:     store.Len(),
		Available: len(store.AvailableItems()),
		ByType:    byType,
		Authors:   authors,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	store, _ := mustOpenStore()
	stats := buildStats(store)

	if !humanOutput {
		outputJSON(stats)
		return nil
	}

	fmt.Printf("%d items (%d available): %d books, %d e-books, %d audiobooks\n\n",
		stats.Total, stats.Available,
		stats.ByType[string(media.KindBook)],
		stats.ByType[string(media.KindEBook)],
		stats.ByType[string(media.KindAudiobook)])

	if len(stats.Authors) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(stats.Authors))
	for _, a := range stats.Authors {
		rows = append(rows, []string{a.Author, itoa(a.Count)})
	}
	fmt.Println(renderTable([]string{"Author", "Items"}, rows, []columnAlignment{alignLeft, alignRight}, os.Stdout))
	return nil
}

package main

import (
	"fmt"

	"github.com/matsen/shelf/internal/media"
	"github.com/matsen/shelf/internal/pdf"
	"github.com/spf13/cobra"
)

var (
	addTitle          string
	addAuthor         string
	addDate           string
	addISBN           string
	addAllowDuplicate bool

	bookPages     int
	bookCondition string

	ebookSizeMB float64
	ebookFormat string
	ebookURL    string
	ebookPDF    string

	audioMinutes  int
	audioNarrator string
	audioFormat   string
)

func init() {
	flags := addCmd.PersistentFlags()
	flags.StringVar(&addTitle, "title", "", "Title")
	flags.StringVar(&addAuthor, "author", "", "Author")
	flags.StringVar(&addDate, "date", "", "Publication date (YYYY-MM-DD)")
	flags.StringVar(&addISBN, "isbn", "", "ISBN (NNN-NNNNNNNNNN)")
	flags.BoolVar(&addAllowDuplicate, "allow-duplicate", false, "Store the item even if its ISBN is already in the catalog")

	addBookCmd.Flags().IntVar(&bookPages, "pages", 0, "Page count")
	addBookCmd.Flags().StringVar(&bookCondition, "condition", "", "Condition: new, good, fair, poor")

	addEBookCmd.Flags().Float64Var(&ebookSizeMB, "size", 0, "File size in MB")
	addEBookCmd.Flags().StringVar(&ebookFormat, "format", "", "Format: pdf, epub, mobi, azw3")
	addEBookCmd.Flags().StringVar(&ebookURL, "url", "", "Download URL")
	addEBookCmd.Flags().StringVar(&ebookPDF, "pdf", "", "Read title, author and size from a local PDF")

	addAudiobookCmd.Flags().IntVar(&audioMinutes, "minutes", 0, "Duration in minutes")
	addAudiobookCmd.Flags().StringVar(&audioNarrator, "narrator", "", "Narrator")
	addAudiobookCmd.Flags().StringVar(&audioFormat, "audio-format", "", "Format: mp3, aac, wav, m4b")

	addCmd.AddCommand(addBookCmd, addEBookCmd, addAudiobookCmd)
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to the catalog",
	Long: `Add a book, e-book or audiobook to the catalog.

Every field is validated before anything is written. An ISBN that is
already in the catalog is rejected unless --allow-duplicate is given or
allow_duplicate_isbn is set in the catalog config.`,
}

var addBookCmd = &cobra.Command{
	Use:   "book",
	Short: "Add a physical book",
	Long: `Add a physical book.

Example:
  shelf add book --title "The Great Gatsby" --author "F. Scott Fitzgerald" \
    --date 1925-04-10 --isbn 978-0743273565 --pages 180 --condition good`,
	Args: cobra.NoArgs,
	RunE: runAddBook,
}

var addEBookCmd = &cobra.Command{
	Use:   "ebook",
	Short: "Add an e-book",
	Long: `Add an e-book.

With --pdf, title, author and file size are read from the PDF when the
corresponding flags are not given, and the format defaults to pdf.

Example:
  shelf add ebook --title "Python Crash Course" --author "Eric Matthes" \
    --date 2019-05-03 --isbn 978-1593279288 --size 5.2 --format epub \
    --url https://example.com/python-crash-course.epub`,
	Args: cobra.NoArgs,
	RunE: runAddEBook,
}

var addAudiobookCmd = &cobra.Command{
	Use:   "audiobook",
	Short: "Add an audiobook",
	Long: `Add an audiobook.

Example:
  shelf add audiobook --title "The Hobbit" --author "J.R.R. Tolkien" \
    --date 1937-09-21 --isbn 978-0547928227 --minutes 683 \
    --narrator "Andy Serkis" --audio-format mp3`,
	Args: cobra.NoArgs,
	RunE: runAddAudiobook,
}

func addDetails() media.Details {
	return media.Details{
		Title:           addTitle,
		Author:          addAuthor,
		PublicationDate: addDate,
		ISBN:            addISBN,
	}
}

func runAddBook(cmd *cobra.Command, args []string) error {
	book, err := media.NewBook(addDetails(), bookPages, bookCondition)
	if err != nil {
		exitWithItemError(err)
	}
	storeNewItem(book)
	return nil
}

func runAddEBook(cmd *cobra.Command, args []string) error {
	d := addDetails()
	size, format := ebookSizeMB, ebookFormat

	if ebookPDF != "" {
		meta, err := pdf.ReadMetadata(ebookPDF)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", ebookPDF, err)
		}
		logger.Debug("read pdf metadata", "path", ebookPDF, "title", meta.Title, "author", meta.Author, "pages", meta.Pages)
		fillFromPDF(&d, &size, &format, meta)
	}

	ebook, err := media.NewEBook(d, size, format, ebookURL)
	if err != nil {
		exitWithItemError(err)
	}
	storeNewItem(ebook)
	return nil
}

func runAddAudiobook(cmd *cobra.Command, args []string) error {
	audio, err := media.NewAudiobook(addDetails(), audioMinutes, audioNarrator, audioFormat)
	if err != nil {
		exitWithItemError(err)
	}
	storeNewItem(audio)
	return nil
}

// fillFromPDF fills fields the user left empty from PDF metadata.
func fillFromPDF(d *media.Details, sizeMB *float64, format *string, meta *pdf.Metadata) {
	if d.Title == "" {
		d.Title = meta.Title
	}
	if d.Author == "" {
		d.Author = meta.Author
	}
	if *sizeMB == 0 {
		*sizeMB = meta.SizeMB
	}
	if *format == "" {
		*format = "pdf"
	}
}

// storeNewItem adds a validated item to the catalog and reports it.
func storeNewItem(item media.Item) {
	store, target := mustOpenStore()
	cfg := mustLoadConfig(target)

	var err error
	if addAllowDuplicate || cfg.AllowDuplicateISBN {
		err = store.Add(item)
	} else {
		err = store.AddUnique(item)
	}
	if err != nil {
		exitWithItemError(err)
	}

	if humanOutput {
		fmt.Printf("Added: %s\n", item)
	} else {
		outputJSON(itemResponse(item))
	}
}

package main

import (
	"errors"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/media"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no catalog found, invalid paths)
	ExitDataError   = 3 // Data error (validation failure, illegal checkout/check-in, duplicate ISBN)
	ExitNotFound    = 4 // No item with the requested ISBN
)

// exitCodeFor maps an error returned by the media or catalog packages to
// an exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, catalog.ErrNotFound):
		return ExitNotFound
	case media.IsValidation(err), media.IsInvalidState(err), errors.Is(err, catalog.ErrDuplicateISBN):
		return ExitDataError
	default:
		return ExitError
	}
}

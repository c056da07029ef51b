package catalog

import (
	"errors"

	"github.com/vmunix/mediacat/internal/storage"
)

var (
	// ErrNotFound indicates no content row exists for the directory.
	ErrNotFound = storage.ErrNotFound

	// ErrUnrecognizedMediaType indicates a mediatype that is neither movie,
	// tvshow nor music.
	ErrUnrecognizedMediaType = errors.New("unrecognized mediatype")

	// ErrUnsupportedMediaType indicates music content, which the catalog
	// does not store.
	ErrUnsupportedMediaType = errors.New("unsupported mediatype")

	// ErrInvalidStatus indicates a status other than staged or managed.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidField indicates an UpdateField call on a column other than
	// status or title.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidQuery indicates a query or remove request whose filters
	// don't fit together.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrLibraryAction wraps failures of the host library collaborator. The
	// catalog change that triggered it stays committed.
	ErrLibraryAction = errors.New("library action failed")
)

// ErrInvalidItem indicates an item that can't be stored, such as one
// without a directory.
var ErrInvalidItem = errors.New("invalid item")

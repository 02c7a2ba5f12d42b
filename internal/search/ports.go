package search

import (
	"context"

	"bookfinder/internal/openlibrary"
)

// Searcher defines the contract for the outbound catalog lookup.
type Searcher interface {
	Search(ctx context.Context, q openlibrary.Query) ([]openlibrary.Doc, error)
}

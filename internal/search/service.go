package search

import (
	"context"
	"fmt"

	"bookfinder/internal/book"
	"bookfinder/internal/openlibrary"
)

// Service drives the session state machine. Transitions:
//
//	Submit:       any -> Searching -> ListShown, or back on failure
//	Select:       ListShown -> DetailShown
//	Back:         DetailShown -> ListShown (Idle when there are no results)
//	SortByRating: ListShown -> ListShown, reordering the collection
//	SetEbookOnly: visibility flag only, no state change
type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Submit runs a search and, on success, replaces the session's result
// collection wholesale. On failure the previous results stay untouched and
// the session returns to whatever view those results support. Two racing
// submissions are not serialized against each other: the later response wins
// the collection.
func (svc *Service) Submit(ctx context.Context, s *Session, field openlibrary.Field, text string) ([]book.Record, error) {
	s.mu.Lock()
	s.state = StateSearching
	s.touch()
	s.mu.Unlock()

	docs, err := svc.searcher.Search(ctx, openlibrary.Query{
		Field: field,
		Text:  text,
		Limit: openlibrary.MaxResults,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err != nil {
		s.state = s.shownState()
		return nil, fmt.Errorf("search %q by %s: %w", text, field, err)
	}

	records := book.FromDocs(docs)
	s.results = records
	s.ebookOnly = false
	s.selectedISBN = ""
	s.state = StateListShown

	out := make([]book.Record, len(records))
	copy(out, records)
	return out, nil
}

// Select moves the session to the detail view for the result carrying the
// given ISBN. Returns book.ErrNotFound when no rendered result matches.
func (svc *Service) Select(s *Session, isbn string) (book.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, r := range s.results {
		if r.ISBN == isbn {
			s.selectedISBN = isbn
			s.state = StateDetailShown
			return r, nil
		}
	}
	return book.Record{}, book.ErrNotFound
}

// Back leaves the detail view.
func (svc *Service) Back(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selectedISBN = ""
	s.state = s.shownState()
}

// SortByRating reorders the session's collection in place, descending by
// rating, stable on ties. Sorting an already sorted collection is a no-op.
func (svc *Service) SortByRating(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	book.SortByRating(s.results)
	s.selectedISBN = ""
	s.state = s.shownState()
}

// SetEbookOnly toggles the visibility filter. The collection itself is not
// touched; hidden entries come back when the filter is switched off.
func (svc *Service) SetEbookOnly(s *Session, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.ebookOnly = on
}

package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookfinder/internal/openlibrary"
)

// ErrNotFound is returned when no rendered result carries the requested ISBN.
var ErrNotFound = errors.New("book not found")

// Placeholder values. Every Record field is populated; absent source data
// gets one of these instead of an empty field.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownISBN   = "No ISBN"
	UnknownYear   = "Unknown Year"
)

// E-book availability descriptions shown to the user.
const (
	EbookBorrowable = "Borrowable"
	EbookNone       = "No eBook Info"
)

// PlaceholderCoverURL is used when a result carries no cover reference.
const PlaceholderCoverURL = "https://openlibrary.org/images/icons/avatar_book-lg.png"

const coverBaseURL = "https://covers.openlibrary.org/b/id"

// Record is the normalized representation of one search result. All seven
// fields are always populated; Rating is always a valid number (0 when the
// source had none).
type Record struct {
	ISBN             string  `json:"isbn"`
	Title            string  `json:"title"`
	Author           string  `json:"author"`
	CoverURL         string  `json:"cover_url,omitempty"`
	EbookAccess      string  `json:"ebook_access"`
	FirstPublishYear string  `json:"first_publish_year"`
	Rating           float64 `json:"rating"`
}

// FromDoc maps one raw search doc into a Record. Each field defaults
// independently: a missing or malformed field never disturbs its siblings.
func FromDoc(d openlibrary.Doc) Record {
	r := Record{
		Title:            UnknownTitle,
		Author:           UnknownAuthor,
		ISBN:             UnknownISBN,
		EbookAccess:      EbookNone,
		FirstPublishYear: UnknownYear,
		Rating:           float64(d.RatingsAverage),
	}

	if d.Title != "" {
		r.Title = d.Title
	}
	if len(d.AuthorNames) > 0 {
		r.Author = strings.Join(d.AuthorNames, ", ")
	}
	if len(d.ISBN) > 0 && d.ISBN[0] != "" {
		r.ISBN = d.ISBN[0]
	}
	if d.CoverID > 0 {
		r.CoverURL = fmt.Sprintf("%s/%d-M.jpg", coverBaseURL, d.CoverID)
	}
	switch d.EbookAccess {
	case "borrowable", "public":
		r.EbookAccess = EbookBorrowable
	}
	if d.FirstPublishYear > 0 {
		r.FirstPublishYear = strconv.Itoa(d.FirstPublishYear)
	}
	return r
}

// FromDocs maps a whole response, preserving API relevance order.
func FromDocs(docs []openlibrary.Doc) []Record {
	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, FromDoc(d))
	}
	return records
}

// EbookAvailable reports whether the record describes a borrowable e-book.
func (r Record) EbookAvailable() bool {
	return r.EbookAccess == EbookBorrowable
}

// LargeCoverURL returns the best cover reference for the detail view: the
// medium cover upgraded to the large variant by naming convention, or the
// fixed placeholder when there is no cover at all.
func (r Record) LargeCoverURL() string {
	if r.CoverURL == "" {
		return PlaceholderCoverURL
	}
	return UpgradeCoverURL(r.CoverURL)
}

// UpgradeCoverURL swaps a medium-size cover suffix for the large one. The
// substitution is heuristic: a URL that does not follow the -M.jpg naming
// convention comes back unmodified.
func UpgradeCoverURL(u string) string {
	if !strings.HasSuffix(u, "-M.jpg") {
		return u
	}
	return strings.TrimSuffix(u, "-M.jpg") + "-L.jpg"
}

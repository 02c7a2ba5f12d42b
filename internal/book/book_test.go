package book

import (
	"testing"

	"bookfinder/internal/openlibrary"

	"github.com/stretchr/testify/assert"
)

func TestFromDoc(t *testing.T) {
	t.Run("full doc maps every field", func(t *testing.T) {
		r := FromDoc(openlibrary.Doc{
			Title:            "The Hobbit",
			AuthorNames:      []string{"J.R.R. Tolkien", "Christopher Tolkien"},
			ISBN:             []string{"9780001", "9780002"},
			CoverID:          12345,
			EbookAccess:      "borrowable",
			FirstPublishYear: 1937,
			RatingsAverage:   4.2,
		})

		assert.Equal(t, "The Hobbit", r.Title)
		assert.Equal(t, "J.R.R. Tolkien, Christopher Tolkien", r.Author)
		assert.Equal(t, "9780001", r.ISBN)
		assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", r.CoverURL)
		assert.Equal(t, EbookBorrowable, r.EbookAccess)
		assert.Equal(t, "1937", r.FirstPublishYear)
		assert.Equal(t, 4.2, r.Rating)
	})

	t.Run("empty doc gets placeholders everywhere", func(t *testing.T) {
		r := FromDoc(openlibrary.Doc{})

		assert.Equal(t, UnknownTitle, r.Title)
		assert.Equal(t, UnknownAuthor, r.Author)
		assert.Equal(t, UnknownISBN, r.ISBN)
		assert.Empty(t, r.CoverURL)
		assert.Equal(t, EbookNone, r.EbookAccess)
		assert.Equal(t, UnknownYear, r.FirstPublishYear)
		assert.Zero(t, r.Rating)
	})

	t.Run("fields default independently", func(t *testing.T) {
		r := FromDoc(openlibrary.Doc{Title: "Only A Title"})
		assert.Equal(t, "Only A Title", r.Title)
		assert.Equal(t, UnknownAuthor, r.Author)
		assert.Equal(t, UnknownISBN, r.ISBN)

		r = FromDoc(openlibrary.Doc{ISBN: []string{"9780001"}})
		assert.Equal(t, UnknownTitle, r.Title)
		assert.Equal(t, "9780001", r.ISBN)
	})

	t.Run("ebook access mapping", func(t *testing.T) {
		assert.Equal(t, EbookBorrowable, FromDoc(openlibrary.Doc{EbookAccess: "borrowable"}).EbookAccess)
		assert.Equal(t, EbookBorrowable, FromDoc(openlibrary.Doc{EbookAccess: "public"}).EbookAccess)
		assert.Equal(t, EbookNone, FromDoc(openlibrary.Doc{EbookAccess: "printdisabled"}).EbookAccess)
		assert.Equal(t, EbookNone, FromDoc(openlibrary.Doc{EbookAccess: "no_ebook"}).EbookAccess)
		assert.Equal(t, EbookNone, FromDoc(openlibrary.Doc{}).EbookAccess)
	})

	t.Run("blank first identifier falls back to placeholder", func(t *testing.T) {
		r := FromDoc(openlibrary.Doc{ISBN: []string{""}})
		assert.Equal(t, UnknownISBN, r.ISBN)
	})
}

func TestFromDocs(t *testing.T) {
	docs := []openlibrary.Doc{
		{Title: "B"},
		{Title: "A"},
	}
	records := FromDocs(docs)

	// relevance order from the API is preserved, never re-sorted
	assert.Equal(t, "B", records[0].Title)
	assert.Equal(t, "A", records[1].Title)
}

func TestRecord_EbookAvailable(t *testing.T) {
	assert.True(t, Record{EbookAccess: EbookBorrowable}.EbookAvailable())
	assert.False(t, Record{EbookAccess: EbookNone}.EbookAvailable())
}

func TestUpgradeCoverURL(t *testing.T) {
	t.Run("medium becomes large", func(t *testing.T) {
		got := UpgradeCoverURL("https://covers.openlibrary.org/b/id/12345-M.jpg")
		assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-L.jpg", got)
	})

	t.Run("unrecognized convention passes through unmodified", func(t *testing.T) {
		assert.Equal(t, "https://example.com/cover.png", UpgradeCoverURL("https://example.com/cover.png"))
	})
}

func TestRecord_LargeCoverURL(t *testing.T) {
	t.Run("upgrades existing cover", func(t *testing.T) {
		r := Record{CoverURL: "https://covers.openlibrary.org/b/id/7-M.jpg"}
		assert.Equal(t, "https://covers.openlibrary.org/b/id/7-L.jpg", r.LargeCoverURL())
	})

	t.Run("placeholder when there is no cover", func(t *testing.T) {
		assert.Equal(t, PlaceholderCoverURL, Record{}.LargeCoverURL())
	})
}

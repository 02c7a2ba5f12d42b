package book

import (
	"testing"

	"bookfinder/internal/openlibrary"

	"github.com/stretchr/testify/assert"
)

func ratings(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Rating
	}
	return out
}

func titles(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestSortByRating(t *testing.T) {
	t.Run("descending on distinct ratings", func(t *testing.T) {
		records := []Record{
			{Title: "low", Rating: 1.5},
			{Title: "high", Rating: 4.8},
			{Title: "mid", Rating: 3.2},
		}
		SortByRating(records)
		assert.Equal(t, []float64{4.8, 3.2, 1.5}, ratings(records))
	})

	t.Run("stable on ties", func(t *testing.T) {
		records := []Record{
			{Title: "first", Rating: 3},
			{Title: "second", Rating: 3},
			{Title: "third", Rating: 3},
			{Title: "top", Rating: 5},
		}
		SortByRating(records)
		assert.Equal(t, []string{"top", "first", "second", "third"}, titles(records))
	})

	t.Run("idempotent", func(t *testing.T) {
		records := []Record{
			{Title: "a", Rating: 2},
			{Title: "b", Rating: 4},
			{Title: "c", Rating: 2},
			{Title: "d", Rating: 0},
		}
		SortByRating(records)
		once := titles(records)
		SortByRating(records)
		assert.Equal(t, once, titles(records))
	})

	t.Run("coerced non-numeric rating ranks below a real one", func(t *testing.T) {
		records := []Record{
			{Title: "unrated", Rating: openlibrary.ParseRating("N/A")},
			{Title: "rated", Rating: openlibrary.ParseRating("3.5")},
		}
		SortByRating(records)
		assert.Equal(t, []string{"rated", "unrated"}, titles(records))
	})

	t.Run("empty and single element", func(t *testing.T) {
		SortByRating(nil)
		one := []Record{{Title: "only"}}
		SortByRating(one)
		assert.Equal(t, "only", one[0].Title)
	})
}

func TestMatchesEbookFilter(t *testing.T) {
	borrowable := Record{EbookAccess: EbookBorrowable}
	none := Record{EbookAccess: EbookNone}

	t.Run("filter off shows everything", func(t *testing.T) {
		assert.True(t, MatchesEbookFilter(borrowable, false))
		assert.True(t, MatchesEbookFilter(none, false))
	})

	t.Run("filter on shows only borrowable", func(t *testing.T) {
		assert.True(t, MatchesEbookFilter(borrowable, true))
		assert.False(t, MatchesEbookFilter(none, true))
	})
}

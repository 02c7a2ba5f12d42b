package book

import "sort"

// SortByRating reorders records in place, descending by rating. The sort is
// stable, so records with equal ratings keep their existing relative order
// and applying it twice yields the same order as applying it once.
func SortByRating(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Rating > records[j].Rating
	})
}

// MatchesEbookFilter reports whether a record stays visible under the
// e-book-only filter. With the filter off every record is visible.
func MatchesEbookFilter(r Record, ebookOnly bool) bool {
	if !ebookOnly {
		return true
	}
	return r.EbookAvailable()
}

package http

import (
	"embed"
	"html/template"
	"strconv"

	"bookfinder/internal/book"
	"bookfinder/internal/search"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// NoResultsNotice is shown when a search comes back empty.
const NoResultsNotice = "No results found."

// listEntry is one rendered result row. Hidden entries stay in the page so
// switching the filter off brings them back without another fetch.
type listEntry struct {
	ISBN        string
	Title       string
	Author      string
	RatingText  string
	EbookAccess string
	CoverURL    string
	Hidden      bool
}

// listPage is the projection behind the search form + result list view.
type listPage struct {
	State     search.State
	ShowList  bool
	Entries   []listEntry
	EbookOnly bool
	Notice    string
	Error     string
}

// detailPage is the projection behind the single-book view.
type detailPage struct {
	Title            string
	Author           string
	ISBN             string
	CoverURL         string
	EbookAccess      string
	FirstPublishYear string
	RatingText       string
}

func formatRating(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newListPage(snap search.Snapshot, errMsg string) listPage {
	page := listPage{
		State:     snap.State,
		ShowList:  snap.State == search.StateListShown || snap.State == search.StateDetailShown,
		EbookOnly: snap.EbookOnly,
		Error:     errMsg,
	}
	if page.ShowList && len(snap.Results) == 0 {
		page.Notice = NoResultsNotice
	}
	for _, r := range snap.Results {
		page.Entries = append(page.Entries, listEntry{
			ISBN:        r.ISBN,
			Title:       r.Title,
			Author:      r.Author,
			RatingText:  formatRating(r.Rating),
			EbookAccess: r.EbookAccess,
			CoverURL:    r.CoverURL,
			Hidden:      !book.MatchesEbookFilter(r, snap.EbookOnly),
		})
	}
	return page
}

func newDetailPage(r book.Record) detailPage {
	return detailPage{
		Title:            r.Title,
		Author:           r.Author,
		ISBN:             r.ISBN,
		CoverURL:         r.LargeCoverURL(),
		EbookAccess:      r.EbookAccess,
		FirstPublishYear: r.FirstPublishYear,
		RatingText:       formatRating(r.Rating),
	}
}

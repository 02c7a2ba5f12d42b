package http

import (
	"log"
	"net/http"
	"strings"

	"bookfinder/internal/book"
	"bookfinder/internal/httpx"
	"bookfinder/internal/openlibrary"
	"bookfinder/internal/search"
)

// APIHandler exposes the search as plain JSON for non-browser callers. It is
// stateless: no session, no view flow, just query in, records out.
type APIHandler struct {
	searcher search.Searcher
}

func NewAPIHandler(searcher search.Searcher) *APIHandler {
	return &APIHandler{searcher: searcher}
}

// Search handles GET /api/search?q=...&field=...
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	form := SearchForm{
		Query: strings.TrimSpace(query.Get("q")),
		Field: query.Get("field"),
	}
	if form.Field == "" {
		form.Field = string(openlibrary.FieldTitle)
	}
	if form.Field == string(openlibrary.FieldISBN) {
		form.ISBN = form.Query
	}
	if verrs := ValidateStruct(form); len(verrs) > 0 {
		details := make([]httpx.ErrorDetail, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, httpx.ErrorDetail{Field: v.Field, Message: v.Message})
		}
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid search request", details)
		return
	}

	docs, err := h.searcher.Search(r.Context(), openlibrary.Query{
		Field: openlibrary.Field(form.Field),
		Text:  form.Query,
		Limit: openlibrary.MaxResults,
	})
	if err != nil {
		log.Printf("api search failed: %v", err)
		httpx.JSONError(r, w, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog lookup failed", nil)
		return
	}

	records := book.FromDocs(docs)
	httpx.JSONSuccess(r, w, records, map[string]interface{}{
		"count": len(records),
		"field": form.Field,
	})
}

package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bookfinder/internal/book"
	"bookfinder/internal/openlibrary"
	"bookfinder/internal/search"
)

const sessionCookie = "bf_session"

// SearchForm is the submitted search. ISBN mirrors the query text when the
// ISBN field is selected so the stricter format rule applies only then.
type SearchForm struct {
	Query string `validate:"required,max=200"`
	Field string `validate:"required,oneof=title author isbn"`
	ISBN  string `validate:"omitempty,isbn"`
}

// Handler serves the search pages. All view state lives in the visitor's
// session; every page render is a projection of it.
type Handler struct {
	service  *search.Service
	sessions *search.Store
}

func NewHandler(service *search.Service, sessions *search.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// session returns the visitor's session, creating one and setting the cookie
// when none exists.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *search.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := h.sessions.Get(c.Value); ok {
			return s
		}
	}
	s := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func (h *Handler) renderList(w http.ResponseWriter, s *search.Session, status int, errMsg string) {
	h.render(w, status, "index", newListPage(s.Snapshot(), errMsg))
}

// Index handles GET /. It renders whatever view the session is in: the bare
// form, the result list, or the selected book's detail.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	snap := s.Snapshot()

	if snap.State == search.StateDetailShown {
		for _, rec := range snap.Results {
			if rec.ISBN == snap.SelectedISBN {
				h.render(w, http.StatusOK, "detail", newDetailPage(rec))
				return
			}
		}
	}
	h.render(w, http.StatusOK, "index", newListPage(snap, ""))
}

// SubmitSearch handles POST /search.
func (h *Handler) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		h.renderList(w, s, http.StatusBadRequest, "Could not read the search form.")
		return
	}

	form := SearchForm{
		Query: strings.TrimSpace(r.PostFormValue("q")),
		Field: r.PostFormValue("field"),
	}
	if form.Field == string(openlibrary.FieldISBN) {
		form.ISBN = form.Query
	}
	if verrs := ValidateStruct(form); len(verrs) > 0 {
		h.renderList(w, s, http.StatusUnprocessableEntity, verrs[0].Message)
		return
	}

	_, err := h.service.Submit(r.Context(), s, openlibrary.Field(form.Field), form.Query)
	if err != nil {
		// One log line, one user-facing message, no retry. The previous
		// results are still in the session and render untouched.
		log.Printf("search failed: %v", err)
		h.renderList(w, s, http.StatusBadGateway, "Search failed. Please try again.")
		return
	}

	h.renderList(w, s, http.StatusOK, "")
}

// ShowDetail handles GET /books/{isbn}.
func (h *Handler) ShowDetail(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	isbn := r.PathValue("isbn")

	rec, err := h.service.Select(s, isbn)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			h.renderList(w, s, http.StatusNotFound, "That result is no longer available.")
			return
		}
		h.renderList(w, s, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	h.render(w, http.StatusOK, "detail", newDetailPage(rec))
}

// Back handles POST /back, leaving the detail view.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	h.service.Back(s)
	h.renderList(w, s, http.StatusOK, "")
}

// SortByRating handles POST /sort.
func (h *Handler) SortByRating(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	h.service.SortByRating(s)
	h.renderList(w, s, http.StatusOK, "")
}

// FilterEbooks handles POST /filter. The checkbox only toggles visibility;
// unchecking it restores every entry without refetching.
func (h *Handler) FilterEbooks(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if err := r.ParseForm(); err != nil {
		h.renderList(w, s, http.StatusBadRequest, "Could not read the filter form.")
		return
	}
	h.service.SetEbookOnly(s, r.PostFormValue("ebook_only") == "on")
	h.renderList(w, s, http.StatusOK, "")
}

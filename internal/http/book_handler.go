package http

import (
	"encoding/json"
	"net/http"

	"catalogapi/internal/httpx"
	"catalogapi/internal/usecase"
)

type BookHandler struct {
	catalog *usecase.Catalog
}

func NewBookHandler(catalog *usecase.Catalog) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// List returns all books matching the optional author/genre filters.
// No auth; an empty catalog yields an empty list, not an error.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := usecase.BookQuery{
		AuthorName: r.URL.Query().Get("author"),
		Genre:      r.URL.Query().Get("genre"),
	}

	books, err := h.catalog.AllBooks(r.Context(), q)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, nil)
}

func (h *BookHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.BookCount(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"count": count}, nil)
}

// Favorites returns the books matching the current user's favorite genre.
// Requires a resolved identity; never silently returns an empty list for
// anonymous callers.
func (h *BookHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	current := httpx.CurrentUserFrom(r)

	books, err := h.catalog.FavoriteBooks(r.Context(), current)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, nil)
}

type addBookReq struct {
	Title     string   `json:"title" validate:"required"`
	Author    string   `json:"author" validate:"required"`
	Published int      `json:"published" validate:"required"`
	Genres    []string `json:"genres" validate:"required"`
}

// Add creates a book, creating its author on first sight. Requires a
// resolved identity.
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	current := httpx.CurrentUserFrom(r)
	book, err := h.catalog.AddBook(r.Context(), current, usecase.AddBookInput{
		Title:     req.Title,
		Author:    req.Author,
		Published: req.Published,
		Genres:    req.Genres,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	httpx.JSONSuccessCreated(w, book)
}

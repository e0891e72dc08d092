package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"catalogapi/internal/httpx"
	"catalogapi/internal/usecase"
)

type AuthorHandler struct {
	catalog *usecase.Catalog
}

func NewAuthorHandler(catalog *usecase.Catalog) *AuthorHandler {
	return &AuthorHandler{catalog: catalog}
}

// List returns every author with its derived book count.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalog.AllAuthors(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, authors, nil)
}

func (h *AuthorHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.AuthorCount(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"count": count}, nil)
}

type editAuthorReq struct {
	SetBornTo int `json:"setBornTo" validate:"required"`
}

// Edit sets the birth year of the author named in the path. Requires a
// resolved identity. A nonexistent author is a null result with 200, not
// an error: callers distinguish "no such author" from "not authorized".
func (h *AuthorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/authors/")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Author name is required", nil)
		return
	}

	var req editAuthorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	current := httpx.CurrentUserFrom(r)
	author, err := h.catalog.EditAuthor(r.Context(), current, name, req.SetBornTo)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	if author == nil {
		httpx.JSONSuccess(w, nil, nil)
		return
	}
	httpx.JSONSuccess(w, author, nil)
}

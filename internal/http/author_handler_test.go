package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catalogapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorHandler_ListWithDerivedCounts(t *testing.T) {
	env := newTestEnv(t)
	authorHandler := NewAuthorHandler(env.catalog)
	bookHandler := NewBookHandler(env.catalog)
	_, token := env.registerAndLogin(t, "alice", "")

	addBook := env.withIdentity(bookHandler.Add)
	for _, req := range []map[string]any{
		{"title": "Dune", "author": "Frank Herbert", "published": 1965, "genres": []string{"scifi"}},
		{"title": "Dune Messiah", "author": "Frank Herbert", "published": 1969, "genres": []string{"scifi"}},
		{"title": "Foundation", "author": "Isaac Asimov", "published": 1951, "genres": []string{"scifi"}},
	} {
		w := httptest.NewRecorder()
		addBook.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", req, token))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	authorHandler.List(w, testutil.NewRequest(http.MethodGet, "/authors", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeBody(w)
	data := body["data"].([]any)
	require.Len(t, data, 2)

	counts := map[string]float64{}
	for _, item := range data {
		author := item.(map[string]any)
		counts[author["name"].(string)] = author["book_count"].(float64)
	}
	assert.Equal(t, float64(2), counts["Frank Herbert"])
	assert.Equal(t, float64(1), counts["Isaac Asimov"])
}

func TestAuthorHandler_Count(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthorHandler(env.catalog)

	w := httptest.NewRecorder()
	handler.Count(w, testutil.NewRequest(http.MethodGet, "/authors/count", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeBody(w)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["count"])
}

func TestAuthorHandler_Edit(t *testing.T) {
	env := newTestEnv(t)
	authorHandler := NewAuthorHandler(env.catalog)
	bookHandler := NewBookHandler(env.catalog)
	_, token := env.registerAndLogin(t, "alice", "")

	w := httptest.NewRecorder()
	env.withIdentity(bookHandler.Add).ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", map[string]any{
		"title": "Dune", "author": "Frank Herbert", "published": 1965, "genres": []string{"scifi"},
	}, token))
	require.Equal(t, http.StatusCreated, w.Code)

	edit := env.withIdentity(authorHandler.Edit)

	t.Run("anonymous is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		edit.ServeHTTP(w, testutil.NewRequest(http.MethodPatch, "/authors/Frank%20Herbert", map[string]any{
			"setBornTo": 1920,
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("sets birth year", func(t *testing.T) {
		w := httptest.NewRecorder()
		edit.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPatch, "/authors/Frank%20Herbert", map[string]any{
			"setBornTo": 1920,
		}, token))

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeBody(w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Frank Herbert", data["name"])
		assert.Equal(t, float64(1920), data["born"])
	})

	t.Run("nonexistent author yields null data with 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		edit.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPatch, "/authors/No%20Such%20Author", map[string]any{
			"setBornTo": 1900,
		}, token))

		assert.Equal(t, http.StatusOK, w.Code)
		body := testutil.DecodeBody(w)
		assert.Nil(t, body["data"])
		assert.Equal(t, true, body["success"])
	})

	t.Run("missing body field", func(t *testing.T) {
		w := httptest.NewRecorder()
		edit.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPatch, "/authors/Frank%20Herbert", map[string]any{}, token))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

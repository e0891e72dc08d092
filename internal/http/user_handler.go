package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"catalogapi/internal/auth"
	"catalogapi/internal/httpx"
	"catalogapi/internal/usecase"
)

type UserHandler struct {
	catalog *usecase.Catalog
	auth    *auth.Service
	// defaultPassword backs users registered without a password of their
	// own, so the original client contract (username + favorite genre
	// only) keeps working.
	defaultPassword string
}

func NewUserHandler(catalog *usecase.Catalog, authService *auth.Service, defaultPassword string) *UserHandler {
	return &UserHandler{
		catalog:         catalog,
		auth:            authService,
		defaultPassword: defaultPassword,
	}
}

type createUserReq struct {
	Username      string `json:"username" validate:"required,min=3,max=50"`
	FavoriteGenre string `json:"favoriteGenre"`
	Password      string `json:"password"`
}

// Create registers a new user. No authentication required.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	password := req.Password
	if password == "" {
		password = h.defaultPassword
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	user, err := h.catalog.CreateUser(r.Context(), usecase.CreateUserInput{
		Username:      req.Username,
		FavoriteGenre: req.FavoriteGenre,
		PasswordHash:  passwordHash,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	httpx.JSONSuccessCreated(w, map[string]any{
		"id":            user.ID,
		"username":      user.Username,
		"favoriteGenre": user.FavoriteGenre,
	})
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a bearer token. An unknown
// username and a wrong password produce the same response body.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWrongCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", auth.ErrWrongCredentials.Error(), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{"token": token}, nil)
}

// Me returns the resolved identity, or null data when the request is
// anonymous.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	current := httpx.CurrentUserFrom(r)
	if current == nil {
		httpx.JSONSuccess(w, nil, nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{
		"id":            current.ID,
		"username":      current.Username,
		"favoriteGenre": current.FavoriteGenre,
	}, nil)
}

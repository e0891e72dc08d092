package http

import (
	"errors"
	"fmt"
	"net/http"

	"catalogapi/internal/httpx"
	"catalogapi/internal/usecase"
)

// writeCatalogError maps catalog errors onto the response envelope. The
// taxonomy is fixed: validation failures are 400 with the submitted
// arguments in the details, missing identity is 401, everything else is an
// infrastructure failure.
func writeCatalogError(w http.ResponseWriter, err error) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message, argDetails(validationErr.Args))
		return
	}
	if errors.Is(err, usecase.ErrNotAuthenticated) {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", usecase.ErrNotAuthenticated.Error(), nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func argDetails(args map[string]any) []httpx.ErrorDetail {
	if len(args) == 0 {
		return nil
	}
	details := make([]httpx.ErrorDetail, 0, len(args))
	for field, value := range args {
		details = append(details, httpx.ErrorDetail{
			Field:   field,
			Message: fmt.Sprintf("submitted value: %v", value),
		})
	}
	return details
}

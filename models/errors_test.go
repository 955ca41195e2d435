package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("product"), http.StatusNotFound},
		{"validation", NewValidationError("qty", "must be positive"), http.StatusBadRequest},
		{"conflict", NewConflictError("email already registered"), http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("invalid credentials"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("admin only"), http.StatusForbidden},
		{"bare sentinel", ErrNotFound, http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("loading order: %w", ErrConflict), http.StatusConflict},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
		{"nil-ish plain error", errors.New(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	err := NewValidationError("price", "negative")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation error does not unwrap to ErrInvalidInput")
	}

	wrapped := fmt.Errorf("checkout: %w", err)
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("wrapped error lost the APIError")
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
}

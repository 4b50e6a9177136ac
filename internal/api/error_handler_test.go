package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		code int
	}{
		{"movie not found", domain.ErrMovieNotFound, http.StatusNotFound},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound},
		{"unknown card", domain.ErrUnknownCard, http.StatusUnprocessableEntity},
		{"not a permutation", domain.ErrNotPermutation, http.StatusUnprocessableEntity},
		{"last visible card", domain.ErrLastVisibleCard, http.StatusUnprocessableEntity},
		{"illegal stage jump", domain.ErrInvalidStageTransition, http.StatusUnprocessableEntity},
		{"invalid cidr", domain.ErrInvalidCIDR, http.StatusUnprocessableEntity},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict},
		{"backup running", domain.ErrBackupInProgress, http.StatusConflict},
		{"wrapped sentinel", fmt.Errorf("replace: %w", domain.ErrInvalidCIDR), http.StatusUnprocessableEntity},
		{"echo error passthrough", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			handler := NewHTTPErrorHandler(zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding envelope: %v", err)
			}
			if body.Error == "" {
				t.Error("error envelope must carry a message")
			}
		})
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("dsn=mongodb://user:hunter2@db"), c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal error details leaked to the client: %q", body.Error)
	}
}

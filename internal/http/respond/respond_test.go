package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/http/respond"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "Validation",
			err:        apperr.Validation("Rejection note is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Rejection note is required"}`,
		},
		{
			name:       "WrappedConflict",
			err:        fmt.Errorf("resolve: %w", apperr.Conflict("Quote has already been approved")),
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Quote has already been approved"}`,
		},
		{
			name:       "Transient",
			err:        apperr.Transient("Please try again", errors.New("deadlock")),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"Please try again"}`,
		},
		{
			name:       "Unclassified",
			err:        errors.New("pq: relation does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Status string `json:"status"`
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Valid", input: `{"status":"NEW"}`, want: "NEW"},
		{name: "UnknownFieldsIgnored", input: `{"status":"NEW","extra":1}`, want: "NEW"},
		{name: "Malformed", input: `{"status":`, wantErr: true},
		{name: "Empty", input: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got body

			err := respond.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input)), &got)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				assert.Equal(t, "invalid request body", apperr.Message(err, ""))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

package media_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	handler "github.com/flowquote/flowquote/internal/http/media"
	"github.com/flowquote/flowquote/internal/media"
)

func TestResolve(t *testing.T) {
	store := media.NewStore(media.NewLocalStore(t.TempDir(), "/uploads"), media.Options{})

	r := chi.NewRouter()
	r.Route("/media", handler.NewHandler(store).Routes)

	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "IndexAligned",
			body:       `{"refs":["/uploads/requests/a.jpg","r2:requests/b.mp4","",7,"/uploads/requests/c.png"]}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"urls":["/uploads/requests/a.jpg",null,null,null,"/uploads/requests/c.png"]}`,
		},
		{
			name:       "Empty",
			body:       `{"refs":[]}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"urls":[]}`,
		},
		{
			name:       "NotAnArray",
			body:       `{"refs":"r2:requests/b.mp4"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"refs must be an array"}`,
		},
		{
			name:       "Missing",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"refs must be an array"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/media/resolve", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

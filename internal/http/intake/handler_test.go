package intake_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/http/intake"
	"github.com/flowquote/flowquote/internal/request"
)

type upload struct {
	name    string
	content string
}

func form(t *testing.T, fields map[string]string, files ...upload) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.name)
		require.NoError(t, err)

		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func setup(t *testing.T, maxBytes int64) (http.Handler, *intake.MockService) {
	t.Helper()

	svc := intake.NewMockService(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/intake", intake.NewHandler(svc, maxBytes).Routes)

	return r, svc
}

func TestSubmit(t *testing.T) {
	businessID := uuid.New()

	fields := map[string]string{
		"businessId":    businessID.String(),
		"clientName":    "Jane Doe",
		"clientEmail":   "jane@example.test",
		"clientPhone":   "555-0100",
		"clientAddress": "1 Main St",
		"problemDesc":   "Kitchen sink is leaking badly",
	}

	t.Run("FilesKeepOrder", func(t *testing.T) {
		router, svc := setup(t, 1<<20)
		requestID := uuid.New()

		svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p request.SubmitParams) (*request.Request, error) {
				assert.Equal(t, businessID, p.BusinessID)
				assert.Equal(t, "Jane Doe", p.ClientName)
				assert.Equal(t, "Kitchen sink is leaking badly", p.ProblemDesc)

				require.Len(t, p.Files, 2)
				assert.Equal(t, "a.jpg", p.Files[0].Name)
				assert.Equal(t, "b.mp4", p.Files[1].Name)

				got, err := io.ReadAll(p.Files[1].Body)
				require.NoError(t, err)
				assert.Equal(t, "video", string(got))

				return &request.Request{ID: requestID}, nil
			})

		body, ct := form(t, fields, upload{"a.jpg", "image"}, upload{"b.mp4", "video"})
		req := httptest.NewRequest(http.MethodPost, "/intake", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true,"requestId":"`+requestID.String()+`"}`, rec.Body.String())
	})

	t.Run("ValidationFromService", func(t *testing.T) {
		router, svc := setup(t, 1<<20)

		svc.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, apperr.Validation("Problem description must be at least 10 characters"))

		body, ct := form(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/intake", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Problem description must be at least 10 characters"}`, rec.Body.String())
	})

	t.Run("StorageFailure", func(t *testing.T) {
		router, svc := setup(t, 1<<20)

		svc.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, apperr.Storage("Failed to upload file", assert.AnError))

		body, ct := form(t, fields, upload{"a.jpg", "image"})
		req := httptest.NewRequest(http.MethodPost, "/intake", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("MissingBusiness", func(t *testing.T) {
		router, _ := setup(t, 1<<20)

		body, ct := form(t, map[string]string{"clientName": "Jane"})
		req := httptest.NewRequest(http.MethodPost, "/intake", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Business is required"}`, rec.Body.String())
	})

	t.Run("NotMultipart", func(t *testing.T) {
		router, _ := setup(t, 1<<20)

		req := httptest.NewRequest(http.MethodPost, "/intake", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("TooLarge", func(t *testing.T) {
		router, _ := setup(t, 512)

		body, ct := form(t, fields, upload{"big.jpg", strings.Repeat("x", 4096)})
		req := httptest.NewRequest(http.MethodPost, "/intake", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

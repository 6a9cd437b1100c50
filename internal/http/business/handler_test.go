package business_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/business"
	handler "github.com/flowquote/flowquote/internal/http/business"
	"github.com/flowquote/flowquote/internal/media"
)

type prefixResolver struct{}

func (prefixResolver) ResolveOne(_ context.Context, ref string) string {
	if ref == "" {
		return ""
	}

	return "https://cdn.test/" + ref
}

func setup(t *testing.T, callerID uuid.UUID) (http.Handler, *handler.MockService) {
	t.Helper()

	svc := handler.NewMockService(gomock.NewController(t))
	h := handler.NewHandler(svc, prefixResolver{})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if callerID != uuid.Nil {
				req = req.WithContext(auth.ContextWithBusiness(req.Context(), callerID))
			}

			next.ServeHTTP(w, req)
		})
	})
	r.Route("/business", h.Routes)
	r.Route("/payment", h.PaymentRoutes)

	return r, svc
}

func TestGetProfile(t *testing.T) {
	id := uuid.New()
	router, svc := setup(t, id)

	svc.EXPECT().Get(gomock.Any(), id).Return(&business.Business{
		ID:            id,
		Email:         "owner@acme.test",
		Name:          "Acme",
		LogoRef:       "logos/x.png",
		PaymentStatus: business.PaymentUnpaid,
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/business", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Acme", body["businessName"])
	assert.Equal(t, "https://cdn.test/logos/x.png", body["logoUrl"])
	assert.Equal(t, "UNPAID", body["paymentStatus"])
	assert.NotContains(t, body, "passwordHash")
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	router, _ := setup(t, uuid.Nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/business", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateSettings(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMocks func(svc *handler.MockService, id uuid.UUID)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"businessName":"Acme Plumbing","phone":"555","address":"1 Main St"}`,
			setupMocks: func(svc *handler.MockService, id uuid.UUID) {
				svc.EXPECT().UpdateSettings(gomock.Any(), id, business.SettingsParams{
					Name: "Acme Plumbing", Phone: "555", Address: "1 Main St",
				}).Return(&business.Business{ID: id, Name: "Acme Plumbing"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "MissingName",
			body: `{"phone":"555"}`,
			setupMocks: func(svc *handler.MockService, id uuid.UUID) {
				svc.EXPECT().UpdateSettings(gomock.Any(), id, gomock.Any()).
					Return(nil, apperr.Validation("Business name is required"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			router, svc := setup(t, id)
			tt.setupMocks(svc, id)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/business/settings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func logoForm(t *testing.T, field, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="logo.png"`)
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadLogo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		router, svc := setup(t, id)

		svc.EXPECT().UploadLogo(gomock.Any(), id, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, f media.File) (string, error) {
				assert.Equal(t, "logo.png", f.Name)
				assert.Equal(t, "image/png", f.ContentType)
				assert.Equal(t, int64(4), f.Size)

				return "logos/abc-logo.png", nil
			})

		body, ct := logoForm(t, "logo", "image/png", []byte("\x89PNG"))
		req := httptest.NewRequest(http.MethodPost, "/business/logo", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"success":true,"logoRef":"logos/abc-logo.png","logoUrl":"https://cdn.test/logos/abc-logo.png"}`,
			rec.Body.String())
	})

	t.Run("NoFile", func(t *testing.T) {
		router, _ := setup(t, uuid.New())

		body, ct := logoForm(t, "other", "image/png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/business/logo", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"No file provided"}`, rec.Body.String())
	})
}

func TestDeleteLogo_None(t *testing.T) {
	id := uuid.New()
	router, svc := setup(t, id)

	svc.EXPECT().DeleteLogo(gomock.Any(), id).Return(apperr.NotFound("No logo to delete"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/business/logo", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No logo to delete"}`, rec.Body.String())
}

func TestPayment(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Submit", func(t *testing.T) {
		router, svc := setup(t, id)
		svc.EXPECT().SubmitPayment(gomock.Any(), id).Return(at, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payment/submit", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"submitted":true,"submittedAt":"2026-05-01T12:00:00Z"}`, rec.Body.String())
	})

	t.Run("SubmissionPending", func(t *testing.T) {
		router, svc := setup(t, id)
		svc.EXPECT().Get(gomock.Any(), id).Return(&business.Business{ID: id}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/submission", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"submitted":false,"submittedAt":null}`, rec.Body.String())
	})

	t.Run("SubmissionRecorded", func(t *testing.T) {
		router, svc := setup(t, id)
		svc.EXPECT().Get(gomock.Any(), id).Return(&business.Business{ID: id, PaymentSubmittedAt: &at}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/submission", nil))

		assert.JSONEq(t, `{"submitted":true,"submittedAt":"2026-05-01T12:00:00Z"}`, rec.Body.String())
	})
}

package business

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/http/respond"
	"github.com/flowquote/flowquote/internal/media"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=business
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*business.Business, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, params business.SettingsParams) (*business.Business, error)
	UploadLogo(ctx context.Context, id uuid.UUID, f media.File) (string, error)
	DeleteLogo(ctx context.Context, id uuid.UUID) error
	SubmitPayment(ctx context.Context, id uuid.UUID) (time.Time, error)
}

type URLResolver interface {
	ResolveOne(ctx context.Context, ref string) string
}

// Handler serves the signed-in business's own account. Every route expects
// auth.Authenticate to have run.
type Handler struct {
	svc  Service
	urls URLResolver
}

func NewHandler(svc Service, urls URLResolver) *Handler {
	return &Handler{svc: svc, urls: urls}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Patch("/settings", h.updateSettings)
	r.Post("/logo", h.uploadLogo)
	r.Delete("/logo", h.deleteLogo)
}

func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Post("/submit", h.submitPayment)
	r.Get("/submission", h.paymentSubmission)
}

type profileResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Email              string                 `json:"email"`
	Name               string                 `json:"businessName"`
	Phone              string                 `json:"phone"`
	Address            string                 `json:"address,omitempty"`
	LogoURL            string                 `json:"logoUrl,omitempty"`
	PaymentStatus      business.PaymentStatus `json:"paymentStatus"`
	PaymentSubmittedAt *time.Time             `json:"paymentSubmittedAt,omitempty"`
	EmailVerified      bool                   `json:"emailVerified"`
	CreatedAt          time.Time              `json:"createdAt"`
}

func (h *Handler) toResponse(ctx context.Context, b *business.Business) profileResponse {
	return profileResponse{
		ID:                 b.ID,
		Email:              b.Email,
		Name:               b.Name,
		Phone:              b.Phone,
		Address:            b.Address,
		LogoURL:            h.urls.ResolveOne(ctx, b.LogoRef),
		PaymentStatus:      b.PaymentStatus,
		PaymentSubmittedAt: b.PaymentSubmittedAt,
		EmailVerified:      b.EmailVerified,
		CreatedAt:          b.CreatedAt,
	}
}

func caller(r *http.Request) (uuid.UUID, error) {
	id, ok := auth.BusinessFromContext(r.Context())
	if !ok {
		return uuid.Nil, apperr.Unauthorized("Unauthorized")
	}

	return id, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(r.Context(), b))
}

type settingsRequest struct {
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req settingsRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.UpdateSettings(r.Context(), id, business.SettingsParams{
		Name:    req.BusinessName,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, h.toResponse(r.Context(), b))
}

type logoResponse struct {
	Success bool   `json:"success"`
	LogoRef string `json:"logoRef"`
	LogoURL string `json:"logoUrl"`
}

const maxLogoForm = 6 << 20

func (h *Handler) uploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoForm)

	if err := r.ParseMultipartForm(maxLogoForm); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Message(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
			return
		}

		respond.Message(w, http.StatusBadRequest, "Invalid form data")

		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("logo")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	ref, err := h.svc.UploadLogo(r.Context(), id, media.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, logoResponse{
		Success: true,
		LogoRef: ref,
		LogoURL: h.urls.ResolveOne(r.Context(), ref),
	})
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) deleteLogo(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteLogo(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: true})
}

type submissionResponse struct {
	Success     bool       `json:"success,omitempty"`
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

func (h *Handler) submitPayment(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	at, err := h.svc.SubmitPayment(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, submissionResponse{Success: true, Submitted: true, SubmittedAt: &at})
}

func (h *Handler) paymentSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, submissionResponse{
		Submitted:   b.PaymentSubmittedAt != nil,
		SubmittedAt: b.PaymentSubmittedAt,
	})
}

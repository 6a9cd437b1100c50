package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/http/respond"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=admin
type Service interface {
	List(ctx context.Context) ([]*business.Business, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status business.PaymentStatus) error
}

// Handler serves the operator's view of all businesses. Routes expect
// auth.RequireAdmin in front of them.
type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/businesses", h.list)
	r.Patch("/businesses/{id}/payment-status", h.setPaymentStatus)
}

type businessResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Email              string                 `json:"email"`
	Name               string                 `json:"businessName"`
	Phone              string                 `json:"phone"`
	PaymentStatus      business.PaymentStatus `json:"paymentStatus"`
	PaymentSubmittedAt *time.Time             `json:"paymentSubmittedAt"`
	EmailVerified      bool                   `json:"emailVerified"`
	CreatedAt          time.Time              `json:"createdAt"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := make([]businessResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, businessResponse{
			ID:                 b.ID,
			Email:              b.Email,
			Name:               b.Name,
			Phone:              b.Phone,
			PaymentStatus:      b.PaymentStatus,
			PaymentSubmittedAt: b.PaymentSubmittedAt,
			EmailVerified:      b.EmailVerified,
			CreatedAt:          b.CreatedAt,
		})
	}

	respond.JSON(w, http.StatusOK, out)
}

type paymentStatusRequest struct {
	PaymentStatus business.PaymentStatus `json:"paymentStatus"`
}

type paymentStatusResponse struct {
	Success       bool                   `json:"success"`
	PaymentStatus business.PaymentStatus `json:"paymentStatus"`
}

func (h *Handler) setPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req paymentStatusRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.SetPaymentStatus(r.Context(), id, req.PaymentStatus); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, paymentStatusResponse{Success: true, PaymentStatus: req.PaymentStatus})
}

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/http/respond"
	"github.com/flowquote/flowquote/internal/quote"
	"github.com/flowquote/flowquote/internal/request"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=request
type Service interface {
	List(ctx context.Context, businessID uuid.UUID, filter request.ListFilter) ([]*request.Request, error)
	Stats(ctx context.Context, businessID uuid.UUID) (map[request.Status]int, error)
	GetOwned(ctx context.Context, id uuid.UUID, businessID uuid.UUID) (*request.Request, error)
	SetStatus(ctx context.Context, id uuid.UUID, businessID uuid.UUID, status request.Status) (*request.Request, error)
}

type Quotes interface {
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*quote.Quote, error)
}

type Handler struct {
	svc    Service
	quotes Quotes
}

func NewHandler(svc Service, quotes Quotes) *Handler {
	return &Handler{svc: svc, quotes: quotes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
}

type requestResponse struct {
	ID            uuid.UUID       `json:"id"`
	BusinessID    uuid.UUID       `json:"businessId"`
	ClientName    string          `json:"clientName"`
	ClientEmail   string          `json:"clientEmail"`
	ClientPhone   string          `json:"clientPhone"`
	ClientAddress string          `json:"clientAddress"`
	ProblemDesc   string          `json:"problemDesc"`
	MediaURLs     []string        `json:"mediaUrls"`
	Status        request.Status  `json:"status"`
	ActiveQuoteID *uuid.UUID      `json:"activeQuoteId"`
	QuoteCount    *int            `json:"quoteCount,omitempty"`
	Quotes        []quoteResponse `json:"quotes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type quoteResponse struct {
	ID            uuid.UUID        `json:"id"`
	LineItems     []quote.LineItem `json:"lineItems"`
	Total         string           `json:"total"`
	Notes         string           `json:"notes,omitempty"`
	ValidUntil    *time.Time       `json:"validUntil,omitempty"`
	Status        quote.Status     `json:"status"`
	RejectionNote string           `json:"rejectionNote,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toResponse(r *request.Request) requestResponse {
	refs := r.MediaRefs
	if refs == nil {
		refs = []string{}
	}

	return requestResponse{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		ClientAddress: r.ClientAddress,
		ProblemDesc:   r.ProblemDesc,
		MediaURLs:     refs,
		Status:        r.Status,
		ActiveQuoteID: r.ActiveQuoteID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func caller(r *http.Request) (uuid.UUID, error) {
	id, ok := auth.BusinessFromContext(r.Context())
	if !ok {
		return uuid.Nil, apperr.Unauthorized("Unauthorized")
	}

	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	businessID, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter, err := request.ParseFilter(r.URL.Query().Get("status"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	reqs, err := h.svc.List(r.Context(), businessID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		resp := toResponse(req)
		resp.QuoteCount = &req.QuoteCount
		out = append(out, resp)
	}

	respond.JSON(w, http.StatusOK, out)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	businessID, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	counts, err := h.svc.Stats(r.Context(), businessID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, counts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	businessID, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	req, err := h.svc.GetOwned(r.Context(), id, businessID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	quotes, err := h.quotes.ListByRequest(r.Context(), req.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := toResponse(req)
	resp.Quotes = make([]quoteResponse, 0, len(quotes))

	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, quoteResponse{
			ID:            q.ID,
			LineItems:     q.LineItems,
			Total:         q.Total.StringFixed(2),
			Notes:         q.Notes,
			ValidUntil:    q.ValidUntil,
			Status:        q.Status,
			RejectionNote: q.RejectionNote,
			CreatedAt:     q.CreatedAt,
		})
	}

	respond.JSON(w, http.StatusOK, resp)
}

type updateStatusRequest struct {
	Status request.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	businessID, err := caller(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	updated, err := h.svc.SetStatus(r.Context(), id, businessID, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}

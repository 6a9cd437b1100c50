package quote

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/document"
	"github.com/flowquote/flowquote/internal/http/respond"
	"github.com/flowquote/flowquote/internal/quote"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=quote
type Service interface {
	Create(ctx context.Context, callerID uuid.UUID, params quote.CreateParams) (*quote.Quote, error)
	Get(ctx context.Context, id uuid.UUID, businessID uuid.UUID) (*quote.Quote, error)
	Resolve(ctx context.Context, params quote.ResolveParams) (*quote.Quote, error)
	ApprovalView(ctx context.Context, id uuid.UUID, token string) (*quote.Bundle, error)
	Document(ctx context.Context, id uuid.UUID, token string, callerID uuid.UUID) (*quote.Bundle, error)
}

type URLResolver interface {
	ResolveOne(ctx context.Context, ref string) string
}

type Links interface {
	ApprovalURL(quoteID string, token string) string
}

type Handler struct {
	svc   Service
	urls  URLResolver
	links Links
}

func NewHandler(svc Service, urls URLResolver, links Links) *Handler {
	return &Handler{svc: svc, urls: urls, links: links}
}

// Routes registers the endpoints for the signed-in business. The public
// approval endpoints are mounted separately by the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
}

type createRequest struct {
	RequestID  uuid.UUID        `json:"requestId"`
	BusinessID uuid.UUID        `json:"businessId"`
	LineItems  []quote.LineItem `json:"lineItems"`
	Notes      string           `json:"notes"`
	ValidUntil string           `json:"validUntil"`
	Total      decimal.Decimal  `json:"total"`
}

type createResponse struct {
	Success       bool      `json:"success"`
	QuoteID       uuid.UUID `json:"quoteId"`
	ApprovalToken string    `json:"approvalToken"`
	ApprovalURL   string    `json:"approvalUrl"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.BusinessFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	validUntil, err := parseDate(req.ValidUntil)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.BusinessID == uuid.Nil {
		req.BusinessID = callerID
	}

	q, err := h.svc.Create(r.Context(), callerID, quote.CreateParams{
		RequestID:  req.RequestID,
		BusinessID: req.BusinessID,
		LineItems:  req.LineItems,
		Notes:      req.Notes,
		ValidUntil: validUntil,
		Total:      req.Total,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, createResponse{
		Success:       true,
		QuoteID:       q.ID,
		ApprovalToken: q.ApprovalToken,
		ApprovalURL:   h.links.ApprovalURL(q.ID.String(), q.ApprovalToken),
	})
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, apperr.Validation("Invalid valid-until date")
}

type quoteResponse struct {
	ID            uuid.UUID        `json:"id"`
	RequestID     uuid.UUID        `json:"requestId"`
	BusinessID    uuid.UUID        `json:"businessId"`
	LineItems     []quote.LineItem `json:"lineItems"`
	Total         string           `json:"total"`
	Notes         string           `json:"notes,omitempty"`
	ValidUntil    *time.Time       `json:"validUntil,omitempty"`
	Status        quote.Status     `json:"status"`
	RejectionNote string           `json:"rejectionNote,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func toResponse(q *quote.Quote) quoteResponse {
	items := q.LineItems
	if items == nil {
		items = []quote.LineItem{}
	}

	return quoteResponse{
		ID:            q.ID,
		RequestID:     q.RequestID,
		BusinessID:    q.BusinessID,
		LineItems:     items,
		Total:         q.Total.StringFixed(2),
		Notes:         q.Notes,
		ValidUntil:    q.ValidUntil,
		Status:        q.Status,
		RejectionNote: q.RejectionNote,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.BusinessFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	q, err := h.svc.Get(r.Context(), id, callerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(q))
}

type approveRequest struct {
	Token         string       `json:"token"`
	Action        quote.Action `json:"action"`
	RejectionNote string       `json:"rejectionNote"`
}

type approveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Approve applies the client's decision carried by an approval link.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, quote.ErrInvalidToken)
		return
	}

	var req approveRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	q, err := h.svc.Resolve(r.Context(), quote.ResolveParams{
		QuoteID:       id,
		Token:         req.Token,
		Action:        req.Action,
		RejectionNote: req.RejectionNote,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	msg := "Quote approved successfully"
	if q.Status == quote.StatusRejected {
		msg = "Quote rejected successfully"
	}

	respond.JSON(w, http.StatusOK, approveResponse{Success: true, Message: msg})
}

type approvalResponse struct {
	Quote    quoteResponse    `json:"quote"`
	Business approvalBusiness `json:"business"`
	Request  approvalRequest  `json:"request"`
	Resolved bool             `json:"resolved"`
}

type approvalBusiness struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type approvalRequest struct {
	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
	ProblemDesc   string `json:"problemDesc"`
}

// ApprovalView returns what the public approval page renders. A resolved
// quote is still returned, flagged, so the page shows its outcome.
func (h *Handler) ApprovalView(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, quote.ErrInvalidToken)
		return
	}

	b, err := h.svc.ApprovalView(r.Context(), id, r.URL.Query().Get("token"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, approvalResponse{
		Quote: toResponse(b.Quote),
		Business: approvalBusiness{
			Name:    b.Business.Name,
			Phone:   b.Business.Phone,
			Email:   b.Business.Email,
			LogoURL: h.urls.ResolveOne(r.Context(), b.Business.LogoRef),
		},
		Request: approvalRequest{
			ClientName:    b.Request.ClientName,
			ClientAddress: b.Request.ClientAddress,
			ProblemDesc:   b.Request.ProblemDesc,
		},
		Resolved: b.Quote.Resolved(),
	})
}

// PDF renders a quote document for the holder of its approval token or for
// the owning business.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, quote.ErrNotFound)
		return
	}

	callerID, _ := auth.BusinessFromContext(r.Context())

	b, err := h.svc.Document(r.Context(), id, r.URL.Query().Get("token"), callerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	doc := toDocument(b)

	var buf bytes.Buffer
	if err := document.Render(&buf, doc); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="quote-`+doc.Number+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func toDocument(b *quote.Bundle) document.Quote {
	items := make([]document.Item, 0, len(b.Quote.LineItems))
	for _, it := range b.Quote.LineItems {
		items = append(items, document.Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}

	return document.Quote{
		Number:        strings.ToUpper(b.Quote.ID.String()[:8]),
		Status:        string(b.Quote.Status),
		CreatedAt:     b.Quote.CreatedAt,
		ValidUntil:    b.Quote.ValidUntil,
		Notes:         b.Quote.Notes,
		RejectionNote: b.Quote.RejectionNote,
		Total:         b.Quote.Total,
		Items:         items,

		BusinessName:    b.Business.Name,
		BusinessPhone:   b.Business.Phone,
		BusinessEmail:   b.Business.Email,
		BusinessAddress: b.Business.Address,

		ClientName:    b.Request.ClientName,
		ClientEmail:   b.Request.ClientEmail,
		ClientPhone:   b.Request.ClientPhone,
		ClientAddress: b.Request.ClientAddress,
	}
}

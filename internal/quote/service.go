package quote

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/notify"
	"github.com/flowquote/flowquote/internal/request"
	"github.com/flowquote/flowquote/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=quote
type Repository interface {
	// CreateQuote inserts q and, in the same transaction, marks its request
	// QUOTED with q as the active quote.
	CreateQuote(ctx context.Context, q *Quote) error
	GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*Quote, error)

	BeginResolve(ctx context.Context) (ResolveTx, error)
}

// ResolveTx holds a row lock on the quote being resolved until Commit or
// Rollback.
type ResolveTx interface {
	LockQuote(ctx context.Context, id uuid.UUID) (*Quote, error)
	MarkResolved(ctx context.Context, id uuid.UUID, status Status, rejectionNote string) error
	SetRequestStatus(ctx context.Context, requestID uuid.UUID, status request.Status) error
	Commit() error
	Rollback() error
}

type Requests interface {
	GetRequest(ctx context.Context, id uuid.UUID) (*request.Request, error)
}

type Businesses interface {
	Get(ctx context.Context, id uuid.UUID) (*business.Business, error)
}

type Recorder interface {
	QuoteCreated()
	QuoteResolved(outcome string)
}

type Service struct {
	repo       Repository
	requests   Requests
	businesses Businesses
	notifier   notify.Notifier
	recorder   Recorder
}

func NewService(repo Repository, requests Requests, businesses Businesses, notifier notify.Notifier, recorder Recorder) *Service {
	return &Service{
		repo:       repo,
		requests:   requests,
		businesses: businesses,
		notifier:   notifier,
		recorder:   recorder,
	}
}

type CreateParams struct {
	RequestID  uuid.UUID
	BusinessID uuid.UUID
	LineItems  []LineItem `validate:"min=1,dive" label:"Line items"`
	Notes      string
	ValidUntil *time.Time
	Total      decimal.Decimal
}

// Create prices a request. callerID is the authenticated business and must
// match params.BusinessID.
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, params CreateParams) (*Quote, error) {
	if params.BusinessID != callerID {
		return nil, apperr.Forbidden("Forbidden")
	}

	for i := range params.LineItems {
		params.LineItems[i].Description = strings.TrimSpace(params.LineItems[i].Description)
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if err := checkTotals(params.LineItems, params.Total); err != nil {
		return nil, err
	}

	r, err := s.requests.GetRequest(ctx, params.RequestID)
	if err != nil {
		return nil, err
	}

	if r.BusinessID != params.BusinessID {
		return nil, request.ErrNotFound
	}

	b, err := s.businesses.Get(ctx, params.BusinessID)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		RequestID:     r.ID,
		BusinessID:    params.BusinessID,
		LineItems:     params.LineItems,
		Total:         params.Total,
		Notes:         strings.TrimSpace(params.Notes),
		ValidUntil:    params.ValidUntil,
		Status:        StatusPending,
		ApprovalToken: rand.Text(),
	}

	if err := s.repo.CreateQuote(ctx, q); err != nil {
		return nil, apperr.Transient("Failed to create quote", err)
	}

	if s.recorder != nil {
		s.recorder.QuoteCreated()
	}

	s.notifier.Notify(notify.Event{
		Kind:          notify.KindStatusChanged,
		Business:      notify.Business{ID: b.ID, Name: b.Name, Email: b.Email},
		Request:       request.Summary(r),
		Status:        string(request.StatusQuoted),
		QuoteID:       q.ID,
		QuoteTotal:    q.Total,
		ApprovalToken: q.ApprovalToken,
	})

	return q, nil
}

// maxAmount is the first value that no longer fits the NUMERIC(12, 2) total
// column.
var maxAmount = decimal.New(1, 10)

// checkAmount rejects values the database would round or overflow.
func checkAmount(label string, v decimal.Decimal) error {
	if !v.Equal(v.Round(2)) {
		return apperr.Validation(label + " must have at most 2 decimal places")
	}

	if v.Abs().GreaterThanOrEqual(maxAmount) {
		return apperr.Validation(label + " is too large")
	}

	return nil
}

// checkTotals requires every line total to equal quantity x unit price and
// the grand total to equal the sum of line totals, with no tolerance.
func checkTotals(items []LineItem, total decimal.Decimal) error {
	sum := decimal.Zero

	for i, item := range items {
		n := i + 1

		if !item.Quantity.IsPositive() {
			return apperr.Validation(fmt.Sprintf("Line item %d: quantity must be greater than 0", n))
		}

		if item.UnitPrice.IsNegative() {
			return apperr.Validation(fmt.Sprintf("Line item %d: unit price must not be negative", n))
		}

		if item.Total.IsNegative() {
			return apperr.Validation(fmt.Sprintf("Line item %d: total must not be negative", n))
		}

		if err := checkAmount(fmt.Sprintf("Line item %d: unit price", n), item.UnitPrice); err != nil {
			return err
		}

		if err := checkAmount(fmt.Sprintf("Line item %d: total", n), item.Total); err != nil {
			return err
		}

		if !item.Total.Equal(item.Quantity.Mul(item.UnitPrice)) {
			return apperr.Validation(fmt.Sprintf("Line item %d: total does not match quantity x unit price", n))
		}

		sum = sum.Add(item.Total)
	}

	if !total.IsPositive() {
		return apperr.Validation("Total must be greater than 0")
	}

	if err := checkAmount("Total", total); err != nil {
		return err
	}

	if !total.Equal(sum) {
		return apperr.Validation("Total does not match the sum of line items")
	}

	return nil
}

type ResolveParams struct {
	QuoteID       uuid.UUID
	Token         string
	Action        Action
	RejectionNote string
}

// Resolve applies a client's decision to a pending quote. The quote and its
// request change together in one transaction while the quote row is locked,
// so concurrent calls produce exactly one winner; the others see Conflict.
func (s *Service) Resolve(ctx context.Context, params ResolveParams) (*Quote, error) {
	q, err := s.resolve(ctx, params)

	if s.recorder != nil {
		s.recorder.QuoteResolved(outcome(q, err))
	}

	if err != nil {
		return nil, err
	}

	s.notifyResolved(ctx, q)

	return q, nil
}

func (s *Service) resolve(ctx context.Context, params ResolveParams) (*Quote, error) {
	if params.Action != ActionApprove && params.Action != ActionReject {
		return nil, apperr.Validation("Action must be approve or reject")
	}

	if strings.TrimSpace(params.Token) == "" {
		return nil, ErrInvalidToken
	}

	rtx, err := s.repo.BeginResolve(ctx)
	if err != nil {
		return nil, apperr.Transient("Failed to update quote", err)
	}
	defer rtx.Rollback()

	q, err := rtx.LockQuote(ctx, params.QuoteID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidToken
		}

		return nil, apperr.Transient("Failed to update quote", err)
	}

	if !tokenMatches(q.ApprovalToken, params.Token) {
		return nil, ErrInvalidToken
	}

	if q.Status != StatusPending {
		return nil, alreadyResolved(q.Status)
	}

	status := StatusApproved
	note := ""

	if params.Action == ActionReject {
		status = StatusRejected
		note = strings.TrimSpace(params.RejectionNote)

		if note == "" {
			return nil, apperr.Validation("Rejection note is required")
		}
	}

	if err := rtx.MarkResolved(ctx, q.ID, status, note); err != nil {
		if errors.Is(err, ErrNotPending) {
			return nil, apperr.Conflict("Quote has already been resolved")
		}

		return nil, apperr.Transient("Failed to update quote", err)
	}

	if err := rtx.SetRequestStatus(ctx, q.RequestID, request.Status(status)); err != nil {
		return nil, apperr.Transient("Failed to update request", err)
	}

	if err := rtx.Commit(); err != nil {
		return nil, apperr.Transient("Failed to commit quote update", err)
	}

	q.Status = status
	q.RejectionNote = note

	return q, nil
}

func alreadyResolved(status Status) error {
	return apperr.Conflict("Quote has already been " + strings.ToLower(string(status)))
}

func tokenMatches(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func outcome(q *Quote, err error) string {
	switch {
	case err == nil && q.Status == StatusApproved:
		return "approved"
	case err == nil:
		return "rejected"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func (s *Service) notifyResolved(ctx context.Context, q *Quote) {
	r, err := s.requests.GetRequest(ctx, q.RequestID)
	if err != nil {
		slog.Warn("skipping resolution notification", "quote_id", q.ID, "error", err)
		return
	}

	b, err := s.businesses.Get(ctx, q.BusinessID)
	if err != nil {
		slog.Warn("skipping resolution notification", "quote_id", q.ID, "error", err)
		return
	}

	s.notifier.Notify(notify.Event{
		Kind:          notify.KindStatusChanged,
		Business:      notify.Business{ID: b.ID, Name: b.Name, Email: b.Email},
		Request:       request.Summary(r),
		Status:        string(q.Status),
		QuoteID:       q.ID,
		QuoteTotal:    q.Total,
		RejectionNote: q.RejectionNote,
	})
}

// Get returns a quote owned by businessID.
func (s *Service) Get(ctx context.Context, id, businessID uuid.UUID) (*Quote, error) {
	q, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.BusinessID != businessID {
		return nil, ErrNotFound
	}

	return q, nil
}

// ListByRequest returns the quotes of a request, newest first. Callers check
// request ownership.
func (s *Service) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*Quote, error) {
	return s.repo.ListByRequest(ctx, requestID)
}

// Bundle is a quote with the request and business it belongs to.
type Bundle struct {
	Quote    *Quote
	Request  *request.Request
	Business *business.Business
}

// ApprovalView loads what the public approval page shows. The id and token
// must match; a resolved quote is still returned so the page can show the
// outcome.
func (s *Service) ApprovalView(ctx context.Context, id uuid.UUID, token string) (*Bundle, error) {
	q, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidToken
		}

		return nil, err
	}

	if !tokenMatches(q.ApprovalToken, token) {
		return nil, ErrInvalidToken
	}

	return s.bundle(ctx, q)
}

// Document loads a quote for rendering. Access is granted by a matching
// token or, without a token, to the owning business.
func (s *Service) Document(ctx context.Context, id uuid.UUID, token string, callerID uuid.UUID) (*Bundle, error) {
	if token != "" {
		return s.ApprovalView(ctx, id, token)
	}

	if callerID == uuid.Nil {
		return nil, apperr.Unauthorized("Unauthorized")
	}

	q, err := s.Get(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	return s.bundle(ctx, q)
}

func (s *Service) bundle(ctx context.Context, q *Quote) (*Bundle, error) {
	r, err := s.requests.GetRequest(ctx, q.RequestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	b, err := s.businesses.Get(ctx, q.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}

	return &Bundle{Quote: q, Request: r, Business: b}, nil
}

package quote

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flowquote/flowquote/internal/apperr"
)

// Status of a quote. PENDING is the only state that accepts a transition,
// and only to APPROVED or REJECTED.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Action is what a client does with an approval link.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

var (
	ErrNotFound     = &apperr.Error{Kind: apperr.ErrNotFound, Message: "Quote not found"}
	ErrInvalidToken = &apperr.Error{Kind: apperr.ErrNotFound, Message: "Quote not found or invalid token"}

	// ErrNotPending is returned by a store when a guarded transition finds
	// the quote already resolved.
	ErrNotPending = errors.New("quote is not pending")
)

type LineItem struct {
	Description string          `json:"description" validate:"required" label:"Line item description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// Quote is a priced proposal against one request.
type Quote struct {
	ID            uuid.UUID
	RequestID     uuid.UUID
	BusinessID    uuid.UUID
	LineItems     []LineItem
	Total         decimal.Decimal
	Notes         string
	ValidUntil    *time.Time
	Status        Status
	RejectionNote string
	ApprovalToken string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Quote) Resolved() bool {
	return q.Status != StatusPending
}

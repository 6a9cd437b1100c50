package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/apperr"
)

// Status is a label on a request. Any status may follow any other when the
// business sets it by hand; quote approval only ever writes APPROVED or
// REJECTED.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusReviewing Status = "REVIEWING"
	StatusQuoted    Status = "QUOTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusNew,
	StatusReviewing,
	StatusQuoted,
	StatusApproved,
	StatusRejected,
	StatusScheduled,
	StatusCompleted,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}

	return false
}

var ErrNotFound = &apperr.Error{Kind: apperr.ErrNotFound, Message: "Request not found"}

// Request is a customer service inquiry owned by one business.
type Request struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string
	ProblemDesc   string
	MediaRefs     []string // upload order
	Status        Status
	ActiveQuoteID *uuid.UUID
	QuoteCount    int // populated by list queries
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

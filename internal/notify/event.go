package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies what happened.
type Kind string

const (
	KindRequestCreated        Kind = "request_created"
	KindStatusChanged         Kind = "status_changed"
	KindVerificationRequested Kind = "verification_requested"
	KindPaymentSubmitted      Kind = "payment_submitted"
)

// Business is the tenant side of a notification.
type Business struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Request is the client side of a notification.
type Request struct {
	ID            uuid.UUID
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string
	ProblemDesc   string
}

// Event is emitted by the domain services after a state change has been
// committed. Only the fields relevant to Kind are set.
type Event struct {
	Kind     Kind
	Business Business
	Request  Request

	// StatusChanged
	Status        string
	QuoteID       uuid.UUID
	QuoteTotal    decimal.Decimal
	ApprovalToken string
	RejectionNote string

	// VerificationRequested
	VerificationToken string

	// PaymentSubmitted
	SubmittedAt time.Time
}

// Message is a single email intent.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

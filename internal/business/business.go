package business

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/apperr"
)

// PaymentStatus gates access to the dashboard.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}

var (
	ErrNotFound   = &apperr.Error{Kind: apperr.ErrNotFound, Message: "Business not found"}
	ErrEmailTaken = &apperr.Error{Kind: apperr.ErrValidation, Message: "An account with this email already exists"}
)

// Business is a tenant.
type Business struct {
	ID                      uuid.UUID
	Email                   string
	PasswordHash            string
	Name                    string
	Phone                   string
	Address                 string
	LogoRef                 string
	PaymentStatus           PaymentStatus
	PaymentSubmittedAt      *time.Time
	EmailVerified           bool
	VerificationToken       string
	VerificationTokenExpiry *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (b *Business) Paid() bool {
	return b.PaymentStatus == PaymentPaid
}

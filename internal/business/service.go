package business

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/media"
	"github.com/flowquote/flowquote/internal/notify"
	"github.com/flowquote/flowquote/internal/validate"
)

const (
	verificationTTL = 24 * time.Hour
	maxLogoBytes    = 5 << 20
)

var logoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=business
type Repository interface {
	CreateBusiness(ctx context.Context, b *Business) error
	GetBusiness(ctx context.Context, id uuid.UUID) (*Business, error)
	GetBusinessByEmail(ctx context.Context, email string) (*Business, error)
	GetBusinessByVerificationToken(ctx context.Context, token string) (*Business, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	UpdateSettings(ctx context.Context, id uuid.UUID, params SettingsParams) error
	UpdateLogo(ctx context.Context, id uuid.UUID, ref string) error
	UpdatePaymentSubmitted(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error
	ListBusinesses(ctx context.Context) ([]*Business, error)
}

// Blobs stores logo files.
type Blobs interface {
	Upload(ctx context.Context, purpose string, f media.File) (string, error)
	RemoveQuietly(ctx context.Context, ref string)
}

type Service struct {
	repo     Repository
	blobs    Blobs
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, blobs Blobs, notifier notify.Notifier) *Service {
	return &Service{repo: repo, blobs: blobs, notifier: notifier, now: time.Now}
}

type SignupParams struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"min=6" label:"Password"`
	Name     string `validate:"required" label:"Business name"`
	Phone    string `validate:"required" label:"Phone"`
}

type SettingsParams struct {
	Name    string `validate:"required" label:"Business name"`
	Phone   string `validate:"required" label:"Phone"`
	Address string
}

// Signup creates an unverified, unpaid business and sends a verification email.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*Business, error) {
	params.Email = normalizeEmail(params.Email)
	params.Name = strings.TrimSpace(params.Name)
	params.Phone = strings.TrimSpace(params.Phone)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	expiry := s.now().Add(verificationTTL)

	b := &Business{
		Email:                   params.Email,
		PasswordHash:            hash,
		Name:                    params.Name,
		Phone:                   params.Phone,
		PaymentStatus:           PaymentUnpaid,
		VerificationToken:       token,
		VerificationTokenExpiry: &expiry,
	}

	if err := s.repo.CreateBusiness(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Event{
		Kind:              notify.KindVerificationRequested,
		Business:          summary(b),
		VerificationToken: token,
	})

	return b, nil
}

// VerifyEmail consumes a verification token. It returns true when the
// account had already been verified.
func (s *Service) VerifyEmail(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, apperr.Validation("Verification token is required")
	}

	b, err := s.repo.GetBusinessByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, apperr.Validation("Invalid or expired verification token")
		}

		return false, fmt.Errorf("get business by token: %w", err)
	}

	if b.EmailVerified {
		return true, nil
	}

	if b.VerificationTokenExpiry == nil || s.now().After(*b.VerificationTokenExpiry) {
		return false, apperr.Validation("Verification token has expired")
	}

	if err := s.repo.MarkEmailVerified(ctx, b.ID); err != nil {
		return false, fmt.Errorf("mark email verified: %w", err)
	}

	return false, nil
}

// Login checks credentials. Unverified accounts are refused.
func (s *Service) Login(ctx context.Context, email, password string) (*Business, error) {
	b, err := s.repo.GetBusinessByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}

		return nil, fmt.Errorf("get business by email: %w", err)
	}

	if err := auth.VerifyPassword(b.PasswordHash, password); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if !b.EmailVerified {
		return nil, apperr.Forbidden("Please verify your email before signing in")
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Business, error) {
	return s.repo.GetBusiness(ctx, id)
}

func (s *Service) UpdateSettings(ctx context.Context, id uuid.UUID, params SettingsParams) (*Business, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Phone = strings.TrimSpace(params.Phone)
	params.Address = strings.TrimSpace(params.Address)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSettings(ctx, id, params); err != nil {
		return nil, err
	}

	return s.repo.GetBusiness(ctx, id)
}

// UploadLogo replaces the business logo and returns the new reference.
func (s *Service) UploadLogo(ctx context.Context, id uuid.UUID, f media.File) (string, error) {
	if !logoContentTypes[strings.ToLower(f.ContentType)] {
		return "", apperr.Validation("Invalid file type. Only JPEG, PNG, and WebP images are allowed.")
	}

	if f.Size > maxLogoBytes {
		return "", apperr.Validation("File too large. Maximum size is 5MB.")
	}

	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return "", err
	}

	ref, err := s.blobs.Upload(ctx, media.PurposeLogos, f)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateLogo(ctx, id, ref); err != nil {
		s.blobs.RemoveQuietly(ctx, ref)
		return "", err
	}

	if b.LogoRef != "" {
		s.blobs.RemoveQuietly(ctx, b.LogoRef)
	}

	return ref, nil
}

func (s *Service) DeleteLogo(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return err
	}

	if b.LogoRef == "" {
		return apperr.NotFound("No logo to delete")
	}

	if err := s.repo.UpdateLogo(ctx, id, ""); err != nil {
		return err
	}

	s.blobs.RemoveQuietly(ctx, b.LogoRef)

	return nil
}

// SubmitPayment records that the business reports having paid and tells the
// administrator.
func (s *Service) SubmitPayment(ctx context.Context, id uuid.UUID) (time.Time, error) {
	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return time.Time{}, err
	}

	at := s.now().UTC()

	if err := s.repo.UpdatePaymentSubmitted(ctx, id, at); err != nil {
		return time.Time{}, err
	}

	s.notifier.Notify(notify.Event{
		Kind:        notify.KindPaymentSubmitted,
		Business:    summary(b),
		SubmittedAt: at,
	})

	return at, nil
}

func (s *Service) List(ctx context.Context) ([]*Business, error) {
	return s.repo.ListBusinesses(ctx)
}

func (s *Service) SetPaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error {
	if !status.Valid() {
		return apperr.Validation("Payment status must be PAID or UNPAID")
	}

	return s.repo.UpdatePaymentStatus(ctx, id, status)
}

func summary(b *Business) notify.Business {
	return notify.Business{ID: b.ID, Name: b.Name, Email: b.Email}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

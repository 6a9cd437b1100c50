package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flowquote/flowquote/internal/business"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectBusinessColumns = `
	id, email, password_hash, name, phone, address, logo_ref, payment_status, payment_submitted_at,
	email_verified, email_verification_token, email_verification_token_expiry, created_at, updated_at
`

// scanBusiness expects the column order of selectBusinessColumns.
func scanBusiness(s scanner) (*business.Business, error) {
	var b business.Business

	var address, logoRef, token sql.NullString

	var paymentStatus string

	if err := s.Scan(
		&b.ID, &b.Email, &b.PasswordHash, &b.Name, &b.Phone, &address, &logoRef, &paymentStatus,
		&b.PaymentSubmittedAt, &b.EmailVerified, &token, &b.VerificationTokenExpiry,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Address = address.String
	b.LogoRef = logoRef.String
	b.VerificationToken = token.String
	b.PaymentStatus = business.PaymentStatus(paymentStatus)

	return &b, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateBusiness(ctx context.Context, b *business.Business) error {
	query := `
		INSERT INTO businesses (email, password_hash, name, phone, address, payment_status,
			email_verification_token, email_verification_token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Email,
		b.PasswordHash,
		b.Name,
		b.Phone,
		nullable(b.Address),
		b.PaymentStatus,
		nullable(b.VerificationToken),
		b.VerificationTokenExpiry,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return business.ErrEmailTaken
		}

		return fmt.Errorf("creating business: %w", err)
	}

	return nil
}

func (s *Store) getBy(ctx context.Context, where string, arg any) (*business.Business, error) {
	query := `SELECT ` + selectBusinessColumns + ` FROM businesses WHERE ` + where

	b, err := scanBusiness(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, business.ErrNotFound
		}

		return nil, fmt.Errorf("getting business: %w", err)
	}

	return b, nil
}

func (s *Store) GetBusiness(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	return s.getBy(ctx, "id = $1", id)
}

func (s *Store) GetBusinessByEmail(ctx context.Context, email string) (*business.Business, error) {
	return s.getBy(ctx, "email = $1", email)
}

func (s *Store) GetBusinessByVerificationToken(ctx context.Context, token string) (*business.Business, error) {
	return s.getBy(ctx, "email_verification_token = $1", token)
}

// exec runs an update and maps zero affected rows to ErrNotFound.
func (s *Store) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return business.ErrNotFound
	}

	return nil
}

func (s *Store) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, "marking email verified", `
		UPDATE businesses
		SET email_verified = TRUE, email_verification_token = NULL,
			email_verification_token_expiry = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
}

func (s *Store) UpdateSettings(ctx context.Context, id uuid.UUID, params business.SettingsParams) error {
	return s.exec(ctx, "updating settings", `
		UPDATE businesses
		SET name = $1, phone = $2, address = $3, updated_at = NOW()
		WHERE id = $4
	`, params.Name, params.Phone, nullable(params.Address), id)
}

func (s *Store) UpdateLogo(ctx context.Context, id uuid.UUID, ref string) error {
	return s.exec(ctx, "updating logo", `
		UPDATE businesses SET logo_ref = $1, updated_at = NOW() WHERE id = $2
	`, nullable(ref), id)
}

func (s *Store) UpdatePaymentSubmitted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.exec(ctx, "updating payment submission", `
		UPDATE businesses SET payment_submitted_at = $1, updated_at = NOW() WHERE id = $2
	`, at, id)
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status business.PaymentStatus) error {
	return s.exec(ctx, "updating payment status", `
		UPDATE businesses SET payment_status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
}

func (s *Store) ListBusinesses(ctx context.Context) ([]*business.Business, error) {
	query := `SELECT ` + selectBusinessColumns + ` FROM businesses ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	defer rows.Close()

	var out []*business.Business

	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning business: %w", err)
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}

	return out, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/quote"
	"github.com/flowquote/flowquote/internal/request"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectQuoteColumns = `
	id, request_id, business_id, line_items, total, notes, valid_until, status, rejection_note,
	approval_token, created_at, updated_at
`

// scanQuote expects the column order of selectQuoteColumns.
func scanQuote(s scanner) (*quote.Quote, error) {
	var q quote.Quote

	var items []byte

	var notes, rejectionNote sql.NullString

	var status string

	if err := s.Scan(
		&q.ID, &q.RequestID, &q.BusinessID, &items, &q.Total, &notes, &q.ValidUntil, &status, &rejectionNote,
		&q.ApprovalToken, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &q.LineItems); err != nil {
		return nil, fmt.Errorf("decoding line items: %w", err)
	}

	q.Notes = notes.String
	q.RejectionNote = rejectionNote.String
	q.Status = quote.Status(status)

	return &q, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateQuote(ctx context.Context, q *quote.Quote) error {
	items, err := json.Marshal(q.LineItems)
	if err != nil {
		return fmt.Errorf("encoding line items: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create quote: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO quotes (request_id, business_id, line_items, total, notes, valid_until, status, approval_token,
			created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`,
		q.RequestID,
		q.BusinessID,
		string(items),
		q.Total,
		nullable(q.Notes),
		q.ValidUntil,
		q.Status,
		q.ApprovalToken,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating quote: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE requests
		SET status = $1, active_quote_id = $2, updated_at = NOW()
		WHERE id = $3
	`, request.StatusQuoted, q.ID, q.RequestID)
	if err != nil {
		return fmt.Errorf("marking request quoted: %w", err)
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return fmt.Errorf("marking request quoted: %w", request.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create quote: %w", err)
	}

	return nil
}

func (s *Store) GetQuote(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	query := `SELECT ` + selectQuoteColumns + ` FROM quotes WHERE id = $1`

	q, err := scanQuote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quote.ErrNotFound
		}

		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return q, nil
}

func (s *Store) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*quote.Quote, error) {
	query := `SELECT ` + selectQuoteColumns + ` FROM quotes WHERE request_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	out := []*quote.Quote{}

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		out = append(out, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return out, nil
}

func (s *Store) BeginResolve(ctx context.Context) (quote.ResolveTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin resolve: %w", err)
	}

	return &resolveTx{tx: tx}, nil
}

type resolveTx struct {
	tx *sql.Tx
}

func (r *resolveTx) LockQuote(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	query := `SELECT ` + selectQuoteColumns + ` FROM quotes WHERE id = $1 FOR UPDATE`

	q, err := scanQuote(r.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quote.ErrNotFound
		}

		return nil, fmt.Errorf("locking quote: %w", err)
	}

	return q, nil
}

// MarkResolved only moves a PENDING quote; anything else yields ErrNotPending.
func (r *resolveTx) MarkResolved(ctx context.Context, id uuid.UUID, status quote.Status, rejectionNote string) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE quotes
		SET status = $1, rejection_note = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`, status, nullable(rejectionNote), id)
	if err != nil {
		return fmt.Errorf("resolving quote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolving quote: %w", err)
	}

	if n == 0 {
		return quote.ErrNotPending
	}

	return nil
}

func (r *resolveTx) SetRequestStatus(ctx context.Context, requestID uuid.UUID, status request.Status) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE requests SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, requestID)
	if err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}

	if n == 0 {
		return request.ErrNotFound
	}

	return nil
}

func (r *resolveTx) Commit() error {
	return r.tx.Commit()
}

func (r *resolveTx) Rollback() error {
	return r.tx.Rollback()
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

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

const selectRequestColumns = `
	r.id, r.business_id, r.client_name, r.client_email, r.client_phone, r.client_address, r.problem_desc,
	r.media_refs, r.status, r.active_quote_id, r.created_at, r.updated_at
`

// scanRequest reads a row in selectRequestColumns order followed by extra
// destinations.
func scanRequest(s scanner, extra ...any) (*request.Request, error) {
	var r request.Request

	var mediaRefs []byte

	var status string

	dest := []any{
		&r.ID, &r.BusinessID, &r.ClientName, &r.ClientEmail, &r.ClientPhone, &r.ClientAddress, &r.ProblemDesc,
		&mediaRefs, &status, &r.ActiveQuoteID, &r.CreatedAt, &r.UpdatedAt,
	}

	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	r.Status = request.Status(status)

	refs, err := decodeRefs(mediaRefs)
	if err != nil {
		return nil, err
	}

	r.MediaRefs = refs

	return &r, nil
}

func decodeRefs(raw []byte) ([]string, error) {
	refs := []string{}
	if len(raw) == 0 {
		return refs, nil
	}

	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, fmt.Errorf("decoding media refs: %w", err)
	}

	return refs, nil
}

func (s *Store) CreateRequest(ctx context.Context, r *request.Request) error {
	refs := r.MediaRefs
	if refs == nil {
		refs = []string{}
	}

	mediaJSON, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("encoding media refs: %w", err)
	}

	query := `
		INSERT INTO requests (business_id, client_name, client_email, client_phone, client_address, problem_desc,
			media_refs, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		r.BusinessID,
		r.ClientName,
		r.ClientEmail,
		r.ClientPhone,
		r.ClientAddress,
		r.ProblemDesc,
		string(mediaJSON),
		r.Status,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM requests r WHERE r.id = $1`

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, request.ErrNotFound
		}

		return nil, fmt.Errorf("getting request: %w", err)
	}

	return r, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, businessID uuid.UUID, status request.Status) error {
	query := `
		UPDATE requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND business_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, status, id, businessID)
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

func (s *Store) ListRequests(ctx context.Context, businessID uuid.UUID, filter request.ListFilter) ([]*request.Request, error) {
	query := `SELECT ` + selectRequestColumns + `,
			(SELECT COUNT(*) FROM quotes q WHERE q.request_id = r.id) AS quote_count
		FROM requests r
		WHERE r.business_id = $1`

	args := []any{businessID}

	if filter.Status != nil {
		query += " AND r.status = $2"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	out := []*request.Request{}

	for rows.Next() {
		var count int

		r, err := scanRequest(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}

		r.QuoteCount = count
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	return out, nil
}

func (s *Store) CountByStatus(ctx context.Context, businessID uuid.UUID) (map[request.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM requests WHERE business_id = $1 GROUP BY status
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("counting requests: %w", err)
	}
	defer rows.Close()

	counts := map[request.Status]int{}

	for rows.Next() {
		var status string

		var n int

		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}

		counts[request.Status(status)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counting requests: %w", err)
	}

	return counts, nil
}

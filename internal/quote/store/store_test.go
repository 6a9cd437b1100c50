package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowquote/flowquote/internal/quote"
	"github.com/flowquote/flowquote/internal/quote/store"
	"github.com/flowquote/flowquote/internal/request"
)

var quoteColumns = []string{
	"id", "request_id", "business_id", "line_items", "total", "notes", "valid_until", "status", "rejection_note",
	"approval_token", "created_at", "updated_at",
}

const itemsJSON = `[{"description":"Pump repair","quantity":"1","unitPrice":"500","total":"500"}]`

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func pendingQuote() *quote.Quote {
	return &quote.Quote{
		RequestID:  uuid.New(),
		BusinessID: uuid.New(),
		LineItems: []quote.LineItem{{
			Description: "Pump repair",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(500),
			Total:       decimal.NewFromInt(500),
		}},
		Total:         decimal.NewFromInt(500),
		Status:        quote.StatusPending,
		ApprovalToken: "TOKEN",
	}
}

func TestCreateQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertsAndMarksRequestQuoted", func(t *testing.T) {
		s, mock := newStore(t)
		q := pendingQuote()
		id := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quotes")).
			WithArgs(q.RequestID, q.BusinessID, itemsJSON, "500", nil, nil, "PENDING", "TOKEN").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))
		mock.ExpectExec(regexp.QuoteMeta("SET status = $1, active_quote_id = $2")).
			WithArgs("QUOTED", id, q.RequestID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.CreateQuote(ctx, q))
		assert.Equal(t, id, q.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenRequestMissing", func(t *testing.T) {
		s, mock := newStore(t)
		q := pendingQuote()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quotes")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.NewString(), now, now))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE requests")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.CreateQuote(ctx, q)
		assert.ErrorIs(t, err, request.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetQuote(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM quotes WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(quoteColumns).AddRow(
				id.String(), uuid.NewString(), uuid.NewString(), []byte(itemsJSON), "500.00", "Parts included", now,
				"REJECTED", "Too expensive", "TOKEN", now, now,
			))

		q, err := s.GetQuote(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, q.Total.Equal(decimal.NewFromInt(500)))
		require.Len(t, q.LineItems, 1)
		assert.Equal(t, "Pump repair", q.LineItems[0].Description)
		assert.Equal(t, quote.StatusRejected, q.Status)
		assert.Equal(t, "Too expensive", q.RejectionNote)
		require.NotNil(t, q.ValidUntil)
	})

	t.Run("NotFound", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM quotes WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(quoteColumns))

		_, err := s.GetQuote(context.Background(), id)
		assert.ErrorIs(t, err, quote.ErrNotFound)
	})
}

func TestResolveTx(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	requestID := uuid.New()
	now := time.Now()

	t.Run("LocksAndUpdatesBothRows", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM quotes WHERE id = $1 FOR UPDATE")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(quoteColumns).AddRow(
				id.String(), requestID.String(), uuid.NewString(), []byte(itemsJSON), "500", nil, nil,
				"PENDING", nil, "TOKEN", now, now,
			))
		mock.ExpectExec(regexp.QuoteMeta("WHERE id = $3 AND status = 'PENDING'")).
			WithArgs("REJECTED", "Too expensive", id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE requests SET status = $1")).
			WithArgs("REJECTED", requestID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rtx, err := s.BeginResolve(ctx)
		require.NoError(t, err)

		q, err := rtx.LockQuote(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, requestID, q.RequestID)

		require.NoError(t, rtx.MarkResolved(ctx, id, quote.StatusRejected, "Too expensive"))
		require.NoError(t, rtx.SetRequestStatus(ctx, requestID, request.StatusRejected))
		require.NoError(t, rtx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotPending", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("AND status = 'PENDING'")).
			WithArgs("APPROVED", nil, id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		rtx, err := s.BeginResolve(ctx)
		require.NoError(t, err)

		err = rtx.MarkResolved(ctx, id, quote.StatusApproved, "")
		assert.ErrorIs(t, err, quote.ErrNotPending)
		require.NoError(t, rtx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LockMissingQuote", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
			WithArgs(id).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		rtx, err := s.BeginResolve(ctx)
		require.NoError(t, err)

		_, err = rtx.LockQuote(ctx, id)
		require.Error(t, err)
		assert.NotErrorIs(t, err, quote.ErrNotFound)
		require.NoError(t, rtx.Rollback())
	})
}

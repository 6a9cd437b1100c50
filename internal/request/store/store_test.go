package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowquote/flowquote/internal/request"
	"github.com/flowquote/flowquote/internal/request/store"
)

var requestColumns = []string{
	"id", "business_id", "client_name", "client_email", "client_phone", "client_address", "problem_desc",
	"media_refs", "status", "active_quote_id", "created_at", "updated_at",
}

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestCreateRequest_StoresMediaInOrder(t *testing.T) {
	s, mock := newStore(t)
	biz := uuid.New()
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO requests")).
		WithArgs(biz, "Jane", "jane@client.test", "555", "1 Main", "Leaking pipe", `["r2:b","r2:a"]`, "NEW").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

	r := &request.Request{
		BusinessID:    biz,
		ClientName:    "Jane",
		ClientEmail:   "jane@client.test",
		ClientPhone:   "555",
		ClientAddress: "1 Main",
		ProblemDesc:   "Leaking pipe",
		MediaRefs:     []string{"r2:b", "r2:a"},
		Status:        request.StatusNew,
	}

	require.NoError(t, s.CreateRequest(context.Background(), r))
	assert.Equal(t, id, r.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRequest(t *testing.T) {
	id := uuid.New()
	biz := uuid.New()
	quoteID := uuid.New()
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM requests r WHERE r.id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(requestColumns).AddRow(
				id.String(), biz.String(), "Jane", "", "555", "1 Main", "Leaking pipe",
				[]byte(`["/uploads/requests/a.jpg","r2:requests/b.jpg"]`), "QUOTED", quoteID.String(), now, now,
			))

		r, err := s.GetRequest(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, biz, r.BusinessID)
		assert.Equal(t, request.StatusQuoted, r.Status)
		assert.Equal(t, []string{"/uploads/requests/a.jpg", "r2:requests/b.jpg"}, r.MediaRefs)
		require.NotNil(t, r.ActiveQuoteID)
		assert.Equal(t, quoteID, *r.ActiveQuoteID)
	})

	t.Run("NotFound", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM requests r WHERE r.id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(requestColumns))

		_, err := s.GetRequest(context.Background(), id)
		assert.ErrorIs(t, err, request.ErrNotFound)
	})
}

func TestUpdateStatus_ScopedToBusiness(t *testing.T) {
	s, mock := newStore(t)
	id := uuid.New()
	biz := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $2 AND business_id = $3")).
		WithArgs("SCHEDULED", id, biz).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateStatus(context.Background(), id, biz, request.StatusScheduled)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestListRequests(t *testing.T) {
	biz := uuid.New()
	now := time.Now()
	cols := append(append([]string{}, requestColumns...), "quote_count")

	t.Run("WithStatusFilter", func(t *testing.T) {
		s, mock := newStore(t)
		st := request.StatusNew

		mock.ExpectQuery(regexp.QuoteMeta("AND r.status = $2 ORDER BY r.created_at DESC")).
			WithArgs(biz, "NEW").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				uuid.NewString(), biz.String(), "Jane", "j@x.test", "1", "2", "desc long enough",
				[]byte(`[]`), "NEW", nil, now, now, 2,
			))

		list, err := s.ListRequests(context.Background(), biz, request.ListFilter{Status: &st})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 2, list[0].QuoteCount)
		assert.Empty(t, list[0].MediaRefs)
		assert.Nil(t, list[0].ActiveQuoteID)
	})

	t.Run("Empty", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE r.business_id = $1 ORDER BY")).
			WithArgs(biz).
			WillReturnRows(sqlmock.NewRows(cols))

		list, err := s.ListRequests(context.Background(), biz, request.ListFilter{})
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestCountByStatus(t *testing.T) {
	s, mock := newStore(t)
	biz := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WithArgs(biz).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("NEW", 4).AddRow("QUOTED", 1))

	counts, err := s.CountByStatus(context.Background(), biz)
	require.NoError(t, err)
	assert.Equal(t, 4, counts[request.StatusNew])
	assert.Equal(t, 1, counts[request.StatusQuoted])
}

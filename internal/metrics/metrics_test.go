package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowquote/flowquote/internal/metrics"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.IntakeSubmitted()
		m.QuoteCreated()
		m.QuoteResolved("approved")
		m.Notification("request_created", "sent")
	})
}

func TestCounters(t *testing.T) {
	m := metrics.New()

	m.IntakeSubmitted()
	m.QuoteCreated()
	m.QuoteCreated()
	m.QuoteResolved("approved")
	m.QuoteResolved("conflict")

	n, err := testutil.GatherAndCount(m.Registry(), "flowquote_quote_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := `
# HELP flowquote_quotes_created_total Quotes created by businesses.
# TYPE flowquote_quotes_created_total counter
flowquote_quotes_created_total 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "flowquote_quotes_created_total"))
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/quotes/{quoteID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotes/abc", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `route="/quotes/{quoteID}"`)
	assert.Contains(t, body, `status="418"`)
}

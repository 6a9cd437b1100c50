package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/http/account"
	"github.com/flowquote/flowquote/internal/http/admin"
	"github.com/flowquote/flowquote/internal/http/business"
	"github.com/flowquote/flowquote/internal/http/intake"
	"github.com/flowquote/flowquote/internal/http/media"
	"github.com/flowquote/flowquote/internal/http/quote"
	"github.com/flowquote/flowquote/internal/http/request"
	"github.com/flowquote/flowquote/internal/http/respond"
	"github.com/flowquote/flowquote/internal/metrics"
)

type Handlers struct {
	Account  *account.Handler
	Business *business.Handler
	Intake   *intake.Handler
	Requests *request.Handler
	Quotes   *quote.Handler
	Media    *media.Handler
	Admin    *admin.Handler
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Tokens     *auth.Tokens
	AdminToken string
	Businesses BusinessLookup
	Limiter    *RateLimiter
	Metrics    *metrics.Metrics
	DB         Pinger

	AllowedOrigins []string
	Timeout        time.Duration

	// UploadsDir is served under UploadsPrefix when files are kept on local
	// disk.
	UploadsDir    string
	UploadsPrefix string
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Instrument)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Get("/healthz", healthz(opts.DB))

	if opts.UploadsDir != "" && opts.UploadsPrefix != "" {
		router.Handle(opts.UploadsPrefix+"/*",
			http.StripPrefix(opts.UploadsPrefix, http.FileServer(http.Dir(opts.UploadsDir))))
	}

	limit := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		limit = opts.Limiter.Middleware
	}

	authenticate := auth.Authenticate(opts.Tokens)
	paid := RequirePaid(opts.Businesses)

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Timeout > 0 {
			r.Use(middleware.Timeout(opts.Timeout))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Use(limit)
			h.Account.Routes(r)
		})

		r.Route("/intake", func(r chi.Router) {
			r.Use(limit)
			h.Intake.Routes(r)
		})

		r.Get("/approvals/{id}", h.Quotes.ApprovalView)

		r.Route("/quotes", func(r chi.Router) {
			r.With(limit, middleware.AllowContentType("application/json")).Post("/{id}/approve", h.Quotes.Approve)
			r.With(auth.Identify(opts.Tokens)).Get("/{id}/pdf", h.Quotes.PDF)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, paid)
				r.Use(middleware.AllowContentType("application/json"))
				h.Quotes.Routes(r)
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Media.Routes(r)
		})

		r.Route("/business", func(r chi.Router) {
			r.Use(authenticate)
			h.Business.Routes(r)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Use(authenticate)
			h.Business.PaymentRoutes(r)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Use(authenticate, paid)
			h.Requests.Routes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(opts.AdminToken))
			h.Admin.Routes(r)
		})
	})

	return router
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				respond.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "database unavailable"})
				return
			}
		}

		respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/business"
	businessStore "github.com/flowquote/flowquote/internal/business/store"
	"github.com/flowquote/flowquote/internal/config"
	"github.com/flowquote/flowquote/internal/database"
	fqHttp "github.com/flowquote/flowquote/internal/http"
	accountHandler "github.com/flowquote/flowquote/internal/http/account"
	adminHandler "github.com/flowquote/flowquote/internal/http/admin"
	businessHandler "github.com/flowquote/flowquote/internal/http/business"
	intakeHandler "github.com/flowquote/flowquote/internal/http/intake"
	mediaHandler "github.com/flowquote/flowquote/internal/http/media"
	quoteHandler "github.com/flowquote/flowquote/internal/http/quote"
	requestHandler "github.com/flowquote/flowquote/internal/http/request"
	"github.com/flowquote/flowquote/internal/media"
	"github.com/flowquote/flowquote/internal/metrics"
	"github.com/flowquote/flowquote/internal/notify"
	"github.com/flowquote/flowquote/internal/quote"
	quoteStore "github.com/flowquote/flowquote/internal/quote/store"
	"github.com/flowquote/flowquote/internal/request"
	requestStore "github.com/flowquote/flowquote/internal/request/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.App.LogLevel)})))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	tokens, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("configure auth: %w", err)
	}

	blobs, err := newMediaStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure media storage: %w", err)
	}

	m := metrics.New()

	composer := notify.Composer{
		AppName:    cfg.App.Name,
		BaseURL:    cfg.App.BaseURL,
		AdminEmail: cfg.Mail.AdminEmail,
	}

	dispatcher := notify.NewDispatcher(composer, newMailer(cfg), notify.Options{
		Workers:   cfg.Notify.Workers,
		QueueSize: cfg.Notify.QueueSize,
		Recorder:  m,
	})
	dispatcher.Start()

	var (
		businesses   = businessStore.New(db)
		requests     = requestStore.New(db)
		businessSvc  = business.NewService(businesses, blobs, dispatcher)
		requestSvc   = request.NewService(requests, businessSvc, blobs, dispatcher, m)
		quoteService = quote.NewService(quoteStore.New(db), requests, businessSvc, dispatcher, m)
	)

	limiter := fqHttp.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	go limiter.Run(ctx)

	router := fqHttp.New(fqHttp.Handlers{
		Account:  accountHandler.NewHandler(businessSvc, tokens),
		Business: businessHandler.NewHandler(businessSvc, blobs),
		Intake:   intakeHandler.NewHandler(requestSvc, cfg.Server.MaxUploadBytes),
		Requests: requestHandler.NewHandler(requestSvc, quoteService),
		Quotes:   quoteHandler.NewHandler(quoteService, blobs, composer),
		Media:    mediaHandler.NewHandler(blobs),
		Admin:    adminHandler.NewHandler(businessSvc),
	}, fqHttp.Options{
		Tokens:         tokens,
		AdminToken:     cfg.Auth.AdminToken,
		Businesses:     businessSvc,
		Limiter:        limiter,
		Metrics:        m,
		DB:             db,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		UploadsDir:     cfg.Storage.LocalDir,
		UploadsPrefix:  cfg.Storage.LocalURLPrefix,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	if err := dispatcher.Close(shutdownCtx); err != nil {
		slog.Error("failed to drain notifications", "error", err)
	}

	return nil
}

func newMediaStore(ctx context.Context, cfg *config.Config) (*media.Store, error) {
	local := media.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.LocalURLPrefix)

	obj := cfg.ObjectStorage()
	if obj == nil {
		slog.Info("object storage not configured, storing uploads locally", "dir", cfg.Storage.LocalDir)
		return media.NewStore(local, media.Options{}), nil
	}

	bucket, err := media.NewMinioStore(ctx, obj.Endpoint, obj.AccessKeyID, obj.SecretAccessKey, obj.Bucket, obj.UseSSL)
	if err != nil {
		return nil, err
	}

	slog.Info("object storage enabled", "endpoint", obj.Endpoint, "bucket", obj.Bucket, "signed_urls", obj.UseSignedURLs)

	return media.NewStore(local, media.Options{
		Object:          bucket,
		PublicBaseURL:   obj.PublicBaseURL,
		SignedURLs:      obj.UseSignedURLs,
		SignedURLExpiry: obj.SignedURLExpiry,
	}), nil
}

func newMailer(cfg *config.Config) notify.Mailer {
	if !cfg.MailEnabled() {
		slog.Warn("SMTP not configured, emails will be logged and skipped")
		return notify.LogMailer{}
	}

	return notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		ReplyTo:  cfg.Mail.ReplyTo,
	})
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

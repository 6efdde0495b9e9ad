// Package app wires configuration, storage, services and transport together
// and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	analyticsrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/analytics"
	bookmarkrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/bookmark"
	categoryrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/category"
	settingsrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/settings"
	tagrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/tag"
	userrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	"github.com/heartmarshall/linkmark-backend/internal/auth"
	"github.com/heartmarshall/linkmark-backend/internal/config"
	"github.com/heartmarshall/linkmark-backend/internal/service/analytics"
	"github.com/heartmarshall/linkmark-backend/internal/service/bookmark"
	"github.com/heartmarshall/linkmark-backend/internal/service/category"
	"github.com/heartmarshall/linkmark-backend/internal/service/summary"
	"github.com/heartmarshall/linkmark-backend/internal/service/tag"
	"github.com/heartmarshall/linkmark-backend/internal/service/user"
	"github.com/heartmarshall/linkmark-backend/internal/transport/middleware"
	"github.com/heartmarshall/linkmark-backend/internal/transport/rest"
)

// Run is the application entry point. It blocks until the context is
// cancelled or the server fails.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	settings := settingsrepo.New(pool)
	categories := categoryrepo.New(pool)
	tags := tagrepo.New(pool)
	bookmarks := bookmarkrepo.New(pool)
	events := analyticsrepo.New(pool)

	recorder := analytics.NewRecorder(logger, events, cfg.Analytics.QueueSize, cfg.Analytics.WriteTimeout)
	defer recorder.Close()
	feed := analytics.NewFeed(logger, events)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	straicoClient := straico.NewClientWithURL(cfg.Straico.BaseURL, cfg.Straico.Timeout, logger)

	tagSvc := tag.NewService(logger, tags, txManager, cfg.Limits.MaxTagsPerUser)
	categorySvc := category.NewService(logger, categories, bookmarks, txManager, cfg.Limits.MaxCategoriesPerUser)
	bookmarkSvc := bookmark.NewService(logger, bookmarks, tags, categories, recorder, txManager, cfg.Limits.MaxBookmarksPerUser)
	summarySvc := summary.NewService(logger, settings, bookmarkSvc, straicoClient, cfg.Straico.Temperature, cfg.Straico.MaxTokens)
	userSvc := user.NewService(logger, users, settings, jwtManager)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Auth:       rest.NewAuthHandler(userSvc, logger),
		Bookmarks:  rest.NewBookmarkHandler(bookmarkSvc, summarySvc, logger),
		Categories: rest.NewCategoryHandler(categorySvc, logger),
		Tags:       rest.NewTagHandler(tagSvc, logger),
		Analytics:  rest.NewAnalyticsHandler(feed, logger),
		Settings:   rest.NewSettingsHandler(userSvc, summarySvc, logger),
		AuthMW:     middleware.Auth(jwtManager),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

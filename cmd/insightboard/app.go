package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nkiryanov/insightboard/internal/cache"
	"github.com/nkiryanov/insightboard/internal/db"
	"github.com/nkiryanov/insightboard/internal/handlers"
	"github.com/nkiryanov/insightboard/internal/logger"
	"github.com/nkiryanov/insightboard/internal/repository/postgres"
	"github.com/nkiryanov/insightboard/internal/service/auth"
	"github.com/nkiryanov/insightboard/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/insightboard/internal/service/dashboard"
	"github.com/nkiryanov/insightboard/internal/service/widget"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler

	logger logger.Logger
	closer func()
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Connect to redis
	cacheStore, err := cache.New(ctx, c.RedisURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("error while connecting to redis. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: c.SecretKey})
	if err != nil {
		pool.Close()
		_ = cacheStore.Close()
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(auth.Config{}, tokenManager, storage.User())
	if err != nil {
		pool.Close()
		_ = cacheStore.Close()
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}

	dashboardService, err := dashboard.NewService(storage.Dashboard())
	if err != nil {
		pool.Close()
		_ = cacheStore.Close()
		return nil, fmt.Errorf("error while creating dashboard service. Err: %w", err)
	}

	widgetService, err := widget.NewService(widget.Config{
		GitHubToken:       c.GitHubToken,
		OpenWeatherAPIKey: c.OpenWeatherAPIKey,
		NewsAPIKey:        c.NewsAPIKey,
	}, cacheStore, log)
	if err != nil {
		pool.Close()
		_ = cacheStore.Close()
		return nil, fmt.Errorf("error while creating widget service. Err: %w", err)
	}

	mux := handlers.NewRouter(authService, storage.User(), dashboardService, widgetService, log)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
		logger:     log,
		closer: func() {
			pool.Close()
			_ = cacheStore.Close()
		},
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			s.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		s.logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	s.logger.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	if s.closer != nil {
		s.closer()
	}

	return err
}

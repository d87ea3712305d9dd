// Package server initializes and runs the collection server: it opens the
// storage backend, serves the REST API and the gRPC health endpoint, and
// shuts both down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/itemkeeper/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	router *gin.Engine
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.Logger, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	repos, err := repomanager.Open(ctx, c.DatabaseDSN, c.SeedCount)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(repos.Items(), httpapi.Options{BasePath: c.BasePath, Ephemeral: c.Ephemeral}, reg, reg, logger)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		router: router,
		grpc:   gs.NewGRPCServer(c.GRPCAddr, logger),
	}, nil
}

// Run serves until ctx is done, SIGINT/SIGTERM arrives, or one of the
// servers fails. The storage backend is closed on return.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "closing storage", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		return err
	}

	app.logger.Info(ctx, "Starting app...",
		"http", lis.Addr().String(),
		"base_path", app.config.BasePath,
		"ephemeral", app.config.Ephemeral,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.serveHTTP(ctx, lis)
	})

	g.Go(func() error {
		return app.grpc.Run(ctx)
	})

	err = g.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "Stopped")
	return err
}

func (app *App) serveHTTP(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{Handler: app.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

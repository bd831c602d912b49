// Package server exposes Corkboard's HTTP surface: the GitHub webhook
// endpoint and the card sync triggers.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/corkboard/internal/ghsync"
	"gorm.io/gorm"
)

// Deps holds the wired components the handlers dispatch into.
type Deps struct {
	DB         *gorm.DB
	Verifier   *ghsync.Verifier
	Reconciler *ghsync.Reconciler
	Sync       *ghsync.Synchronizer
	Dispatcher *ghsync.Dispatcher
}

// StartOpts holds configuration for the HTTP server.
type StartOpts struct {
	Deps Deps
	Port int
	Out  io.Writer
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully, draining any in-flight async pushes.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Deps.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	router := newRouter(opts.Deps)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Corkboard listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	if opts.Deps.Dispatcher != nil {
		opts.Deps.Dispatcher.Wait()
	}
	return nil
}

// newRouter builds the Gin engine with all routes registered.
func newRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, deps)
	return router
}

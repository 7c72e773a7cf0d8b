package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Run starts the HTTP server and the report workers, and blocks until a shutdown signal is received.
// Workers stop taking new requests on shutdown; requests already claimed are finished first.
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	uc, err := srv.mapHandlers(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		uc.RunWorkers(workerCtx)
	}()

	addr := fmt.Sprintf("%s:%d", srv.host, srv.port)
	server := &http.Server{
		Addr:    addr,
		Handler: srv.gin,
	}

	serveErr := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "Started server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		stopWorkers()
		<-workersDone
		return err
	case sig := <-ch:
		srv.l.Infof(ctx, "Received signal %v, shutting down gracefully", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "Server shutdown error: %v", err)
	}

	stopWorkers()
	<-workersDone

	srv.l.Info(ctx, "API server stopped.")
	return nil
}

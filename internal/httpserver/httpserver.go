package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run maps routes, starts the event mirror and serves HTTP until ctx is
// done. The realtime session is disconnected on the way out.
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.mapHandlers()

	if srv.bridge != nil {
		if err := srv.bridge.Start(ctx); err != nil {
			srv.logger.Errorf(ctx, "Failed to start event mirror: %v", err)
			return err
		}
		srv.logger.Info(ctx, "Redis event mirror started")
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	srv.logger.Infof(ctx, "Control API listening on %s", httpSrv.Addr)

	var serveErr error
	select {
	case <-ctx.Done():
		srv.logger.Info(ctx, "Stopping realtime client...")
	case serveErr = <-errCh:
		srv.logger.Errorf(ctx, "HTTP server error: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
	}
	if srv.bridge != nil {
		if err := srv.bridge.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(shutdownCtx, "Event mirror shutdown error: %v", err)
		}
	}
	srv.session.Disconnect(shutdownCtx)

	return serveErr
}

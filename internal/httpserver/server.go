package httpserver

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"storefront/internal/quote"
	basketsvc "storefront/internal/service/basket"
	checkoutsvc "storefront/internal/service/checkout"
)

// Deps bundles everything the routes need.
type Deps struct {
	Baskets  *basketsvc.Service
	Checkout *checkoutsvc.Service
	Quote    *quote.Poller
	// StorePing reports reachability of the basket store for /readyz.
	StorePing func(ctx context.Context) error
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server with all storefront routes.
func New(addr string, logger *zap.Logger, corsOrigins []string, deps Deps) *Server {
	router := buildRouter(logger, corsOrigins, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

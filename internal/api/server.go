// Package api exposes the matching engine over HTTP and WebSocket: an
// /orders resource to submit and list orders, /bids and /asks for
// read-only book depth, /healthcheck for liveness, and /ws for a live
// trade feed.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// Server owns the HTTP listener and its graceful shutdown.
type Server struct {
	address string
	port    int
	http    *http.Server
	logger  zerolog.Logger
	cancel  context.CancelFunc
}

// New builds a Server. hub is wired into the /ws route; engine and query
// back /orders, /bids, and /asks.
func New(address string, port int, engine OrderSubmitter, query QuerySurface, hub WebSocketHandler) *Server {
	handlers := NewHandlers(engine, query, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthcheck", handlers.HandleHealthcheck)
	mux.HandleFunc("/orders", handlers.HandleOrders)
	mux.HandleFunc("/bids", handlers.HandleBids)
	mux.HandleFunc("/asks", handlers.HandleAsks)
	mux.HandleFunc("/ws", handlers.HandleWebSocket)

	return &Server{
		address: address,
		port:    port,
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", address, port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: log.With().Str("component", "api-server").Logger(),
	}
}

// Shutdown gracefully drains the HTTP listener.
func (s *Server) Shutdown() {
	s.logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error during shutdown")
	}
}

// Run blocks serving HTTP until ctx is cancelled, then shuts down
// gracefully. It supervises its own goroutine with tomb so a listener
// failure is observable the same way the rest of this module reports
// fatal errors.
func (s *Server) Run(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	t.Go(func() error {
		s.logger.Info().Str("addr", s.http.Addr).Msg("server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	<-ctx.Done()
	s.Shutdown()
	return t.Wait()
}

// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"

	"github.com/execdesk/scheduling-service/internal/handlers"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/internal/middleware"
)

// natsReadiness adapts the NATS connection to the handler readiness check.
type natsReadiness struct {
	conn *nats.Conn
}

func (n *natsReadiness) IsReady() bool {
	return n.conn != nil && n.conn.IsConnected()
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(
	flags flags,
	meetingHandlers *handlers.MeetingHandlers,
	conflictHandlers *handlers.ConflictHandlers,
	executiveHandlers *handlers.ExecutiveHandlers,
	healthHandlers *handlers.HealthHandlers,
	gracefulCloseWG *sync.WaitGroup,
) *http.Server {
	router := chi.NewRouter()

	// Note: Order matters - RequestIDMiddleware should come first in the chain.
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.IdentityMiddleware())

	router.Group(healthHandlers.Routes)
	router.Group(meetingHandlers.Routes)
	router.Group(conflictHandlers.Routes)
	router.Group(executiveHandlers.Routes)

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}

// gracefulShutdown drains the HTTP server and the NATS connection, waiting
// for both before returning.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	cancel()
	gracefulCloseWG.Wait()
}

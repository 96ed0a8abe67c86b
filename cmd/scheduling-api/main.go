// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

// Package main is the scheduling service API that provides a RESTful API for
// managing executives, meetings, scheduling conflicts and notifications.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/execdesk/scheduling-service/internal/handlers"
	"github.com/execdesk/scheduling-service/internal/infrastructure/messaging"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Set up tracing before anything that starts spans.
	shutdownTracing, err := setupTracing(ctx, env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up tracing")
		return
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.With(logging.ErrKey, err).Error("error shutting down tracing")
		}
	}()

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	notificationService := service.NewNotificationService(
		repos.Notification,
		repos.Executive,
		messageBuilder,
	)
	reportBuilder := service.NewConflictReportBuilder(repos.Meeting)
	availabilityService := service.NewAvailabilityService(repos.Executive, reportBuilder)
	meetingService := service.NewMeetingService(
		repos.Meeting,
		repos.Executive,
		repos.Conflict,
		reportBuilder,
		notificationService,
		messageBuilder,
	)
	rsvpService := service.NewRSVPService(repos.Meeting, repos.Executive, messageBuilder)
	conflictService := service.NewConflictService(
		repos.Conflict,
		repos.Meeting,
		repos.Executive,
		notificationService,
		messageBuilder,
	)
	taskService := service.NewTaskService(repos.Executive, messageBuilder)
	executiveService := service.NewExecutiveService(repos.Executive, messageBuilder)

	// Initialize handlers
	meetingHandlers := handlers.NewMeetingHandlers(meetingService, rsvpService)
	conflictHandlers := handlers.NewConflictHandlers(conflictService)
	executiveHandlers := handlers.NewExecutiveHandlers(
		executiveService,
		taskService,
		availabilityService,
		notificationService,
	)
	healthHandlers := handlers.NewHealthHandlers(
		&natsReadiness{conn: natsConn},
		repos.Executive,
		repos.Meeting,
		repos.Conflict,
		repos.Notification,
	)

	httpServer := setupHTTPServer(
		flags,
		meetingHandlers,
		conflictHandlers,
		executiveHandlers,
		healthHandlers,
		&gracefulCloseWG,
	)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}

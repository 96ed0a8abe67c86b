// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/execdesk/scheduling-service/internal/logging"
)

// flags are the command line flags for the scheduling service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the scheduling service.
type environment struct {
	Port            string
	NatsURL         string
	OTLPEndpoint    string
	TracingDisabled bool
}

// parseFlags parses command line flags for the scheduling service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the scheduling service
func parseEnv() environment {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	return environment{
		Port:            port,
		NatsURL:         natsURL,
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TracingDisabled: os.Getenv("TRACING_DISABLED") == "true",
	}
}

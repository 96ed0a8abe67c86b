// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/execdesk/scheduling-service/internal/infrastructure/store"
	"github.com/execdesk/scheduling-service/internal/logging"
)

// natsConnTimeout is how long to wait for the initial NATS connection.
const natsConnTimeout = 10 * time.Second

// repositories bundles the KV-backed repositories handed to the services.
type repositories struct {
	Executive    *store.NatsExecutiveRepository
	Meeting      *store.NatsMeetingRepository
	Conflict     *store.NatsConflictRepository
	Notification *store.NatsNotificationRepository
}

// setupNATS establishes the NATS connection used for both the KV stores and
// message publishing. The closed handler signals the done channel so the
// process restarts rather than serving without its store.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(natsConnTimeout),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.With("nats_url", env.NatsURL).InfoContext(ctx, "NATS connection established")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).ErrorContext(ctx, "async NATS error")
			} else {
				slog.With(logging.ErrKey, err).ErrorContext(ctx, "async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			err := conn.LastError()
			if err != nil {
				slog.With(logging.ErrKey, err).ErrorContext(ctx, "NATS connection closed")
			} else {
				slog.InfoContext(ctx, "NATS connection closed")
			}
			gracefulCloseWG.Done()
			done <- os.Interrupt
		}),
	)
	if err != nil {
		return nil, err
	}

	// Counterpart to the Done call in the closed handler.
	gracefulCloseWG.Add(1)

	return natsConn, nil
}

// getKeyValueStores creates or binds the JetStream KV buckets and wraps
// them in the aggregate repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	buckets := map[string]jetstream.KeyValue{}
	for _, name := range []string{
		store.KVStoreNameExecutives,
		store.KVStoreNameMeetings,
		store.KVStoreNameConflicts,
		store.KVStoreNameNotifications,
	} {
		kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  name,
			History: 1,
		})
		if err != nil {
			return nil, err
		}
		buckets[name] = kv
	}

	return &repositories{
		Executive:    store.NewNatsExecutiveRepository(buckets[store.KVStoreNameExecutives]),
		Meeting:      store.NewNatsMeetingRepository(buckets[store.KVStoreNameMeetings]),
		Conflict:     store.NewNatsConflictRepository(buckets[store.KVStoreNameConflicts]),
		Notification: store.NewNatsNotificationRepository(buckets[store.KVStoreNameNotifications]),
	}, nil
}

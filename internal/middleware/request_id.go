// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/constants"
)

// RequestIDMiddleware attaches a request ID to the context and response,
// generating one when the caller did not send one.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), constants.RequestIDContextID, requestID)
			ctx = logging.AppendCtx(ctx, slog.String("request_id", requestID))

			w.Header().Set(constants.RequestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityMiddleware copies the verified caller identity headers into the
// request context. The fronting proxy has already authenticated the caller;
// the service only consumes the result.
func IdentityMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if executiveID := r.Header.Get(constants.ExecutiveIDHeader); executiveID != "" {
				ctx = context.WithValue(ctx, constants.ExecutiveContextID, executiveID)
				ctx = logging.AppendCtx(ctx, slog.String("principal", executiveID))
			}
			if role := r.Header.Get(constants.ExecutiveRoleHeader); role != "" {
				ctx = context.WithValue(ctx, constants.ExecutiveRoleContextID, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

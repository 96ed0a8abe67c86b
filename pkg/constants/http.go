// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

// Package constants holds shared constant values for the scheduling service.
package constants

// contextID is the key type for request-scoped context values.
type contextID int

const (
	// RequestIDContextID is the context key for the request ID.
	RequestIDContextID contextID = iota
	// ExecutiveContextID is the context key for the authenticated executive UID.
	ExecutiveContextID
	// ExecutiveRoleContextID is the context key for the authenticated executive role.
	ExecutiveRoleContextID
)

// HTTP headers set by the fronting auth proxy. The service trusts these
// values; credential verification happens upstream.
const (
	// RequestIDHeader is the header carrying the request ID.
	RequestIDHeader = "X-Request-Id"
	// ExecutiveIDHeader is the header carrying the verified caller identity.
	ExecutiveIDHeader = "X-Executive-Id"
	// ExecutiveRoleHeader is the header carrying the verified caller role.
	ExecutiveRoleHeader = "X-Executive-Role"
	// XOnBehalfOfHeader is the header naming the principal an indexer message
	// was produced for.
	XOnBehalfOfHeader = "x-on-behalf-of"
)

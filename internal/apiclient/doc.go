// Package apiclient is a thin client for the downstream HTTP API.
//
// It wraps the transport behind one convenience method per verb and folds
// every outcome into a uniform Result value:
//   - Fixed base endpoint, default headers, and timeout set at construction
//   - Optional static bearer credential
//   - Per-call header, query, and timeout overrides
//   - No retries and no call-level locking; each call is one attempt
//
// The verb methods never return an error: remote error statuses, timeouts,
// and requests that could not be sent all come back as a Result with
// Success unset, so callers branch on the discriminator instead of
// handling errors in control flow.
package apiclient

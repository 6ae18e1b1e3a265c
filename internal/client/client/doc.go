// Package client contains the transport layer of the finkeeper client.
//
// # Overview
//
// The package provides:
//  1. The Doer contract: one call per request, JSON in and JSON out, with
//     a bearer token attached when one is given.
//  2. HTTPClient, the net/http implementation talking to the REST backend.
//     It is the single chokepoint for outbound calls: no retries, no
//     caching, every call is fire-once.
//  3. Request, a generic helper decoding a response into a typed value.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// A non-2xx response becomes a *ServiceError whose Message is resolved from
// the body in this order: top-level "message", nested "error.message",
// first "errors[].msg", then DefaultErrorMessage. Transport failures wrap
// ErrUnavailable and carry no code. ServiceError with status 401/403
// matches ErrUnauthorized through errors.Is.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client

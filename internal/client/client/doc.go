// Package client contains client-side building blocks for CityGuardian.
//
// # Overview
//
// The package provides:
//  1. The API contract used by the session store (see the Client interface):
//     Register, Login, Profile and Health.
//  2. A concrete REST implementation (see HTTPClient). Protected calls take
//     the bearer token as an argument; the client keeps no auth state.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Response statuses map to sentinel errors matched with errors.Is:
// ErrValidation, ErrUnauthorized, ErrUnauthenticated, ErrNotFound,
// ErrDuplicateEmail and ErrUnavailable. Message turns any of them into a
// line suitable for the terminal.
package client

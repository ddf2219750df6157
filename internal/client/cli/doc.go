// Package cli provides the interactive CityGuardian command-line client.
//
// It wires configuration, local session storage, the REST client and a REPL.
// The session survives restarts: a user who logged in once stays signed in
// until they log out.
//
// Commands:
//   - help, health, exit | quit
//   - register, login, logout
//   - profile, whoami (require a session; otherwise the login flow starts)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

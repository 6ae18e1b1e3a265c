// Package cli provides the interactive FinKeeper command-line client.
//
// The App holds the application services and the shared session and runs a
// small read–eval–print loop on top of them. Every command is a thin
// presentation layer: it prompts, calls one service, and prints the result
// or a user-facing message for the error.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - Balance refresh and profile editing
//   - Credit cards: overview, create, edit, activate/deactivate, pay invoice
//   - Monthly dashboard summary
//
// Requests are wrapped by withBusy, which sets the busy flag for the
// duration of the call and clears it on every exit path.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

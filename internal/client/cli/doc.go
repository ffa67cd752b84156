// Package cli provides the interactive request desk command-line client.
//
// It wires configuration, the local profile database, the HTTP gateway, the
// state container and an interactive REPL. On start the persisted identity
// and profile are restored and the user lands on the screen of their role,
// or on Login.
//
// Every navigation goes through the route guard: a path the user may not
// open is replaced by the guard's redirect before any screen is built. The
// navigator unmounts the previous screen before mounting the next one, so a
// list stops polling as soon as it is left.
//
// Key commands:
//   - login / logout
//   - go <path>, routes, show
//   - set / submit on form screens
//   - filter / more / page / refresh / update / respond on list screens
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Navigator, StartOnlineStatusWatcher, and runREPL for details.
package cli

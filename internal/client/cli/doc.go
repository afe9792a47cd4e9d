// Package cli provides the interactive Agent Synergy command-line client.
//
// It wires configuration, local credential storage, the API client and
// services, and a REPL. On start the session is restored from storage, a
// background watcher pings /health to switch between online and offline
// mode, and the prompt tracks the session through an AuthService
// subscription.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

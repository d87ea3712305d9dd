// Package cli provides the interactive item client.
//
// It wires configuration, the remote collection client, the item cache, the
// selection store and the editor into a REPL. A background watcher probes the
// server's health endpoint (when configured) and shows online/offline mode in
// the prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

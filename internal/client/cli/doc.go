// Package cli is the interactive Evento operator console.
//
// It keeps a session token on disk, talks to the REST API for account and
// contributor approval commands and to the gRPC identity service for
// whoami and the connectivity probe. The REPL is started with App.Run and
// blocks until the user exits.
package cli

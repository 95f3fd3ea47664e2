// Package services contains the server-side business logic: the credential
// store and sessions, contributor approval, events, tickets and media upload
// URLs. Transports (REST, gRPC) call into this package after the
// authorization gate has resolved the caller.
package services

// Package client talks to the Evento backend on behalf of the CLI.
//
// RESTClient covers account, contributor approval and media endpoints;
// IdentityClient covers the identity service and the health probe. Both send
// the session token as "Authorization: Bearer <token>".
//
// Failures are reported as *APIError for REST and mapped onto the sentinel
// errors in errors.go, so callers can use errors.Is for either transport.
//
// Session persists the token between CLI runs.
package client

package common

// TokenCookieName is the cookie carrying the session token, as set by the
// login endpoints and cleared by logout.
const TokenCookieName = "token"

// AuthorizationHeaderName is the HTTP header / gRPC metadata key that may
// carry a "Bearer <token>" session token instead of the cookie.
const AuthorizationHeaderName = "authorization"

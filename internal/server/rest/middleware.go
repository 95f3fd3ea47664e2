package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/authz"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Authorizer is the authorization gate as seen by the transport.
type Authorizer interface {
	Authorize(ctx context.Context, token string, allowed ...models.Role) (*models.Identity, error)
}

const identityKey = "identity"

// tokenFrom reads the session token from the cookie, falling back to an
// "Authorization: Bearer" header for non-browser clients.
func tokenFrom(c *gin.Context) string {
	if tok, err := c.Cookie(common.TokenCookieName); err == nil && tok != "" {
		return tok
	}
	tok, _ := common.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
	return tok
}

// require lets the request through only when the gate resolves the caller
// to one of roles.
func (h *Handler) require(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := h.gate.Authorize(c.Request.Context(), tokenFrom(c), roles...)
		if err != nil {
			h.fail(c, err)
			return
		}
		setIdentity(c, id)
		c.Next()
	}
}

// optional resolves the caller when a valid token is present and carries on
// anonymously otherwise. Store failures still abort.
func (h *Handler) optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := tokenFrom(c)
		if tok == "" {
			c.Next()
			return
		}
		id, err := h.gate.Authorize(c.Request.Context(), tok, models.AllRoles()...)
		switch {
		case err == nil:
			setIdentity(c, id)
		case !isAuthError(err):
			h.fail(c, err)
			return
		}
		c.Next()
	}
}

func isAuthError(err error) bool {
	status, _, _ := statusFor(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func setIdentity(c *gin.Context, id *models.Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(authz.WithIdentity(c.Request.Context(), id))
}

func identity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*models.Identity)
	return id
}

// requestLogger logs one line per request through the server logger.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if id := identity(c); id != nil {
			args = append(args, "subject", id.SubjectID, "role", id.Role)
		}
		h.logger.Info(c.Request.Context(), "request", args...)
	}
}

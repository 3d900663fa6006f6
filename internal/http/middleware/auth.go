// README: Bearer-token auth middleware; resolves the caller's role once per request.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"buensabor/internal/identity"
	"buensabor/internal/infra"
)

const (
	ctxSubject = "auth.subject"
	ctxRole    = "auth.role"
)

// Auth verifies the Authorization bearer token and stores the caller's
// subject and resolved role on the request context. The role is derived
// exactly once, here, via identity.Resolve.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			abortUnauthorized(c, "authorization header must be a bearer token")
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(ctxSubject, token.Subject)
		c.Set(ctxRole, identity.Resolve(token.Claims))
		c.Next()
	}
}

// RequireRole rejects callers whose resolved role is not in the allow
// list. Guests are always rejected: no usable role claim means no access.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CallerRole(c)
		for _, r := range roles {
			if role == r && role != identity.RoleGuest {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not allowed"})
	}
}

// CallerSubject returns the authenticated subject, if any.
func CallerSubject(c *gin.Context) string {
	if v, ok := c.Get(ctxSubject); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CallerRole returns the resolved role, defaulting to guest.
func CallerRole(c *gin.Context) identity.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(identity.Role); ok {
			return r
		}
	}
	return identity.RoleGuest
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

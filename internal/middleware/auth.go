package middleware

import (
	"net/http"

	"github.com/OratorMurambiwa/MedStroke/internal/auth"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/OratorMurambiwa/MedStroke/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the client-held cookie carrying the opaque session token.
const SessionCookie = "session_id"

const identityKey = "identity"

// SessionAuth resolves the session cookie into an identity snapshot and
// aborts with 401 when no valid token is presented.
func SessionAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
			return
		}
		id, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the authenticated identity holds one of
// the given roles. Must run after SessionAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not permitted"})
	}
}

// IdentityFrom returns the identity snapshot set by SessionAuth.
func IdentityFrom(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return session.Identity{}, false
	}
	id, ok := v.(session.Identity)
	return id, ok
}

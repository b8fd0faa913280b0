package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/mazeshare/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSessionClaims is the key used to store session claims in the Gin context.
	ContextSessionClaims = "sessionClaims"

	// SessionClaim is the token claim holding the session id.
	SessionClaim = "sid"
)

// Authoriz checks the session token of a request. The token comes from the
// Authorization header or, for websocket upgrades, the token query parameter.
// On routes with an :ID parameter the token must belong to that session.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requestToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		if id := c.Param("ID"); id != "" {
			sid, _ := claims[SessionClaim].(string)
			if !strings.EqualFold(sid, id) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token does not grant this session"})
				return
			}
		}

		// Attach session claims to the request context for further use.
		c.Set(ContextSessionClaims, claims)
		c.Next()
	}
}

func requestToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query("token")
		return token, token != ""
	}

	// Split the "Bearer" prefix from the token.
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

const authClaimsContextKey = "auth_claims"

// AuthClaims carries the verified identity of an authenticated API request.
type AuthClaims struct {
	AdminID uint
	Roles   []string
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*AuthClaims, error)
}

// Auth returns a gin middleware that requires a valid bearer token on every
// request. The verified claims are stored in the gin.Context for handlers
// via GetAuthClaims.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, pkg.ErrorResponse{
				Message: "missing or malformed authorization header",
			})
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, pkg.ErrorResponse{
				Message: "invalid or expired token",
			})
			return
		}

		c.Set(authClaimsContextKey, claims)
		c.Next()
	}
}

// GetAuthClaims extracts the verified claims from the gin.Context.
// Returns nil if the request did not pass the Auth middleware.
func GetAuthClaims(c *gin.Context) *AuthClaims {
	if v, exists := c.Get(authClaimsContextKey); exists {
		if claims, ok := v.(*AuthClaims); ok {
			return claims
		}
	}
	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

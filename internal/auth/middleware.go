package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sarvaliya/folio/internal/response"
)

type contextKey string

const claimsContextKey contextKey = "folioClaims"

// AuthMiddleware validates bearer tokens and stores the caller's claims.
func AuthMiddleware(service *Service, errs response.Writer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errs.Error(c, http.StatusUnauthorized, response.KindUnauthorized, "Missing authorization header")
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			errs.Error(c, http.StatusUnauthorized, response.KindUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := service.Verify(token)
		if err != nil {
			if errors.Is(err, ErrForbiddenRole) {
				errs.Error(c, http.StatusForbidden, response.KindUnauthorized, "Role not permitted")
				return
			}
			errs.Error(c, http.StatusUnauthorized, response.KindUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(string(claimsContextKey), claims)
		c.Next()
	}
}

// CurrentClaims extracts the verified caller from the context.
func CurrentClaims(c *gin.Context) (Claims, bool) {
	value, exists := c.Get(string(claimsContextKey))
	if !exists {
		return Claims{}, false
	}
	claims, ok := value.(Claims)
	return claims, ok
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

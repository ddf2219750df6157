package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/common"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/auth"
)

// IdentityHandler serves a request whose caller has already been verified.
// It cannot be registered without going through authenticated.
type IdentityHandler func(c *gin.Context, id auth.Identity)

// authenticated extracts and verifies the bearer token, then calls h with the
// resulting identity. Any failure ends the request with 401. The identity is
// also attached to the request context.
func (s *HTTPServer) authenticated(h IdentityHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			s.metrics.authEvent(routeLabel(c), "NO_TOKEN")
			rejectUnauthenticated(c, "Not authorized, no token")
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				s.metrics.authEvent(routeLabel(c), "TOKEN_EXPIRED")
				rejectUnauthenticated(c, "Not authorized, token expired")
				return
			}
			s.metrics.authEvent(routeLabel(c), "TOKEN_INVALID")
			rejectUnauthenticated(c, "Not authorized, token failed")
			return
		}

		id := auth.IdentityFromClaims(claims)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))

		h(c, id)
	}
}

// bearerToken parses "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func rejectUnauthenticated(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", common.BearerScheme)
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: msg, Code: api.CodeUnauthenticated})
}

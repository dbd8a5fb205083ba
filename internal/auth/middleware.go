package auth

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// PublicPathPrefix marks requests that skip authentication entirely.
// Matching is a plain prefix test, so "/authors" is public as well.
const PublicPathPrefix = "/auth"

// Client-facing rejection messages. They never carry error details.
const (
	MsgTokenRequired    = "JWT token required"
	MsgTokenExpired     = "expired JWT token"
	MsgInvalidSignature = "invalid JWT signature"
	MsgUnsupportedToken = "unsupported JWT token"
	MsgInternalError    = "internal server error"
)

// Authenticate verifies the bearer token and attaches the caller's Principal to
// the request context. Rejections are written as plain text and abort the chain.
// It does not enforce roles; that belongs to internal/rbac.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, PublicPathPrefix) {
			c.Next()
			return
		}

		raw := c.GetHeader(authorizationHeader)
		if !strings.HasPrefix(raw, bearerPrefix) {
			reject(c, http.StatusBadRequest, MsgTokenRequired, nil)
			return
		}

		claims, err := v.Verify(strings.TrimPrefix(raw, bearerPrefix))
		if err != nil {
			status, msg := verifyFailure(err)
			reject(c, status, msg, err)
			return
		}

		id, err := IdentityFromClaims(claims)
		if err != nil {
			reject(c, http.StatusInternalServerError, MsgInternalError, err)
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func verifyFailure(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized, MsgTokenExpired
	case errors.Is(err, ErrTokenMalformed):
		return http.StatusUnauthorized, MsgInvalidSignature
	case errors.Is(err, ErrTokenUnsupported):
		return http.StatusBadRequest, MsgUnsupportedToken
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

func reject(c *gin.Context, status int, msg string, err error) {
	log := logger.FromGin(c)
	attrs := []any{"path", c.Request.URL.Path, "status", status}
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	if status >= http.StatusInternalServerError {
		log.Error(msg, attrs...)
	} else {
		log.Warn(msg, attrs...)
	}

	c.String(status, msg)
	c.Abort()
}

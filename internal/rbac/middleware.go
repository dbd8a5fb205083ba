package rbac

import (
	"net/http"

	"taskboard/internal/auth"
	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Authorize gates every request through rs. It must run after auth.Authenticate
// so the principal, when any, is already in the request context.
func Authorize(rs RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal *auth.Principal
		if p, ok := auth.PrincipalFrom(c.Request.Context()); ok {
			principal = &p
		}

		switch d := rs.Evaluate(c.Request.URL.Path, principal); d {
		case Allow:
			c.Next()
		case DenyUnauthenticated:
			logger.FromGin(c).Warn("access denied", "path", c.Request.URL.Path, "decision", d.String())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		default:
			attrs := []any{"path", c.Request.URL.Path, "decision", d.String()}
			if principal != nil {
				attrs = append(attrs, "user_id", principal.Identity.UserID, "role", principal.Identity.Role.String())
			}
			logger.FromGin(c).Warn("access denied", attrs...)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		}
	}
}

package main

import (
	"log/slog"

	"taskboard/internal/auth"
	"taskboard/internal/httpapi"
	"taskboard/internal/rbac"
	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// newRouter builds the engine and its middleware chain:
// request logging, authentication, path-rule authorization, then handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func newRouter(log *slog.Logger, verifier auth.TokenVerifier, rules rbac.RuleSet, h httpapi.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(auth.Authenticate(verifier))
	r.Use(rbac.Authorize(rules))

	registerRoutes(r, h)
	return r
}

func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	r.GET("/users/me", h.Me)

	todos := r.Group("/todos")
	{
		todos.GET("", h.ListTodos)
		todos.GET("/:todo_id", h.GetTodo)
	}

	// ADMIN routes; the rule set restricts /admin/** to ROLE_ADMIN.
	admin := r.Group("/admin")
	{
		admin.GET("/todos", h.ListTodos)
		admin.GET("/todos/:todo_id", h.GetTodo)
	}
}

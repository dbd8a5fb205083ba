package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/todo"
	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Todos todo.Repository
}

// Me returns the identity the authenticator attached to the request.
func (h Handlers) Me(c *gin.Context) {
	id, err := auth.IdentityFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, id)
}

type searchQuery struct {
	Weather       string `form:"weather"`
	UpdatedAfter  string `form:"updated_after"`
	UpdatedBefore string `form:"updated_before"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Size          int    `form:"size" binding:"omitempty,min=1"`
}

// ListTodos searches todos. Every filter is optional; absent filters do not
// narrow the result.
func (h Handlers) ListTodos(c *gin.Context) {
	if h.Todos == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "todos not configured"})
		return
	}

	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	specs := make([]todo.Spec, 0, 3)
	if w := strings.TrimSpace(q.Weather); w != "" {
		specs = append(specs, todo.EqualWeather(&w))
	}
	if q.UpdatedAfter != "" {
		from, err := parseTimestamp(q.UpdatedAfter, false)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "updated_after must be RFC3339 or YYYY-MM-DD"})
			return
		}
		specs = append(specs, todo.UpdatedAfter(&from))
	}
	if q.UpdatedBefore != "" {
		to, err := parseTimestamp(q.UpdatedBefore, true)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "updated_before must be RFC3339 or YYYY-MM-DD"})
			return
		}
		specs = append(specs, todo.UpdatedBefore(&to))
	}

	res, err := h.Todos.Search(c.Request.Context(), todo.Page{Number: q.Page, Size: q.Size}, specs...)
	if err != nil {
		logger.FromGin(c).Error("todo search failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "todo search failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) GetTodo(c *gin.Context) {
	if h.Todos == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "todos not configured"})
		return
	}
	id, err := strconv.ParseInt(c.Param("todo_id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "todo_id must be a positive integer"})
		return
	}

	tw, err := h.Todos.FindByIDWithUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		logger.FromGin(c).Error("todo lookup failed", "todo_id", id, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "todo lookup failed"})
		return
	}
	c.JSON(http.StatusOK, tw)
}

const dateLayout = "2006-01-02"

// parseTimestamp accepts RFC3339, a zone-less ISO date-time (read as UTC), or a
// bare date. A bare date means the start of that day, or its last instant when
// endOfDay is set, so date ranges stay inclusive.
func parseTimestamp(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return d.Add(24*time.Hour - time.Nanosecond), nil
	}
	return d, nil
}

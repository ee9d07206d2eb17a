package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/http/middleware"
	"backend/internal/reservation"

	"github.com/gin-gonic/gin"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "corpo vazio", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload inválido", err)
		return false
	}
	return true
}

// pathID parses the :id segment; a response is already written on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id inválido", err)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// actorRole maps the authenticated role onto the lifecycle roles.
func actorRole(c *gin.Context) reservation.Role {
	switch middleware.GetUserRole(c) {
	case "owner", "admin":
		return reservation.RoleOwner
	case "driver":
		return reservation.RoleDriver
	default:
		return reservation.RoleClient
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/http/middleware"
)

// respondOK wraps a successful read or write in the uniform envelope with
// the resource under its domain-named key.
func respondOK(c *gin.Context, kv gin.H) {
	respondStatus(c, http.StatusOK, kv)
}

func respondCreated(c *gin.Context, kv gin.H) {
	respondStatus(c, http.StatusCreated, kv)
}

func respondStatus(c *gin.Context, status int, kv gin.H) {
	payload := gin.H{"success": true}
	for k, v := range kv {
		payload[k] = v
	}
	c.JSON(status, payload)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// RespondDomainError maps typed service errors onto status codes. Anything
// unclassified is logged with the request id and redacted to a generic
// message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err), domain.IsConflict(err), domain.IsPrecondition(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, err.Error())
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("unhandled error")
		respondError(c, http.StatusInternalServerError, "Server error")
	}
}

// bindJSON parses the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// idParam reads the :id path segment, answering 400 when it is not numeric.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// actorID returns the acting admin's user id for audit columns.
func actorID(c *gin.Context) *int64 {
	if sess, ok := middleware.AdminSession(c); ok {
		id := sess.AdminUserID
		return &id
	}
	return nil
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
)

// Health answers the liveness probe. It reports even when the database is
// down; DB state surfaces per endpoint as 503.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DBCheck reports whether the database answers a ping right now and whether
// the async migration has brought the schema up yet.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Database not available"})
		return
	}
	respondOK(c, gin.H{
		"database":     "ok",
		"schema_ready": intdb.HasTable(intconfig.DB, "batches"),
	})
}

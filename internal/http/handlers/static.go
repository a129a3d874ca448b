package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/http/middleware"
)

// StaticHandler serves the front-end: index.html at the root, a gated admin
// subtree, and an index.html fallback for client-side routes.
type StaticHandler struct {
	PublicPath string
	Auth       middleware.Auth
}

// Serve is mounted as the NoRoute handler so API routes keep priority.
func (h StaticHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
		return
	}

	reqPath := c.Request.URL.Path
	if strings.HasPrefix(reqPath, "/api/") || reqPath == "/api" {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
		return
	}

	rel := strings.TrimPrefix(reqPath, "/")
	if strings.Contains(rel, "..") || strings.HasPrefix(rel, "/") {
		respondError(c, http.StatusBadRequest, "Invalid path")
		return
	}

	if rel == "admin" || strings.HasPrefix(rel, "admin/") {
		if _, ok := h.Auth.ResolveAdmin(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		h.serveFile(c, rel, filepath.Join(h.PublicPath, "admin", "index.html"))
		return
	}

	h.serveFile(c, rel, filepath.Join(h.PublicPath, "index.html"))
}

func (h StaticHandler) serveFile(c *gin.Context, rel, fallbackFile string) {
	if rel == "" {
		rel = "index.html"
	}
	full := filepath.Join(h.PublicPath, filepath.FromSlash(rel))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	}
	if info, err := os.Stat(fallbackFile); err == nil && !info.IsDir() {
		c.File(fallbackFile)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
}

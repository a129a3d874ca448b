package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/services"
)

// AuthHandler owns admin login/logout. The session cookie and the returned
// bearer token resolve to the same server-side session.
type AuthHandler struct {
	Users      repositories.UserRepository
	SecretKey  string
	SessionTTL time.Duration
	Auth       middleware.Auth
}

func (h AuthHandler) service(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:      h.Users,
		Sessions:   h.Auth.Sessions,
		SecretKey:  h.SecretKey,
		SessionTTL: h.SessionTTL,
		RequestID:  middleware.GetRequestID(c),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login answers the auth endpoints with the "message" variant of the
// envelope.
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	res, err := h.service(c).Login(req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Invalid credentials"
		switch {
		case domain.IsUnavailable(err):
			status, msg = http.StatusServiceUnavailable, err.Error()
		case !domain.IsUnauthorized(err):
			status, msg = http.StatusInternalServerError, "Server error"
		}
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	setSessionCookie(c, middleware.AdminCookie, res.Session.Token, h.SessionTTL)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

// Logout clears the admin session; unknown tokens still succeed.
func (h AuthHandler) Logout(c *gin.Context) {
	if tok, err := c.Cookie(middleware.AdminCookie); err == nil {
		h.service(c).Logout(tok)
	}
	setSessionCookie(c, middleware.AdminCookie, "", -time.Second)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// Me reports the identity behind the current session.
func (h AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.AdminSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}
	respondOK(c, gin.H{"user": gin.H{
		"id":        sess.AdminUserID,
		"username":  sess.AdminUsername,
		"full_name": sess.AdminName,
	}})
}

func setSessionCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl/time.Second), "/", "", false, true)
}

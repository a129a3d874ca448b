package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/session"
)

const (
	// AdminCookie and TravelerCookie carry the opaque session tokens. The
	// two tracks never share a cookie.
	AdminCookie    = "session_token"
	TravelerCookie = "traveler_token"

	adminSessionKey    = "admin_session"
	travelerSessionKey = "traveler_session"
)

// BearerResolver maps an Authorization bearer token to a live admin session.
type BearerResolver interface {
	ResolveBearer(token string) (*session.Session, bool)
}

// Auth gates requests on the server-side session store. Cookie clients and
// Authorization: Bearer clients resolve to the same session records.
type Auth struct {
	Sessions *session.Store
	Bearer   BearerResolver
}

// ResolveAdmin finds the admin session behind the request, via cookie or
// bearer token, without gating.
func (a Auth) ResolveAdmin(c *gin.Context) (*session.Session, bool) {
	return a.adminSession(c)
}

func (a Auth) adminSession(c *gin.Context) (*session.Session, bool) {
	if tok, err := c.Cookie(AdminCookie); err == nil {
		if sess, ok := a.Sessions.Get(tok, session.KindAdmin); ok {
			return sess, true
		}
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") && a.Bearer != nil {
		return a.Bearer.ResolveBearer(strings.TrimPrefix(h, "Bearer "))
	}
	return nil, false
}

// RequireAdmin rejects the request unless it carries a valid admin session.
func (a Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := a.adminSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}
		c.Set(adminSessionKey, sess)
		c.Next()
	}
}

// OptionalAdmin attaches the admin session when present but never rejects.
func (a Auth) OptionalAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := a.adminSession(c); ok {
			c.Set(adminSessionKey, sess)
		}
		c.Next()
	}
}

// RequireUploadSession admits either track; travelers may upload their own
// documents.
func (a Auth) RequireUploadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := a.adminSession(c); ok {
			c.Set(adminSessionKey, sess)
			c.Next()
			return
		}
		if tok, err := c.Cookie(TravelerCookie); err == nil {
			if sess, ok := a.Sessions.Get(tok, session.KindTraveler); ok {
				c.Set(travelerSessionKey, sess)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authentication required",
		})
	}
}

// AdminSession returns the admin session attached by the gate, if any.
func AdminSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(adminSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// TravelerSession returns the traveler session attached by the gate, if any.
func TravelerSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(travelerSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// BodyLimit caps request bodies so oversized uploads fail fast.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

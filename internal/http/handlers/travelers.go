package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/services"
	"alhudha-backend/internal/session"
	"alhudha-backend/internal/utils"
)

// TravelerHandler exposes traveler records and the self-service PIN login.
type TravelerHandler struct {
	Sessions   *session.Store
	SessionTTL time.Duration
}

func (TravelerHandler) service(c *gin.Context) services.TravelerService {
	return services.TravelerService{RequestID: middleware.GetRequestID(c)}
}

// List returns the full record set for admins and the public-safe subset,
// capped at 50 rows, for everyone else.
func (h TravelerHandler) List(c *gin.Context) {
	svc := h.service(c)
	if _, ok := middleware.AdminSession(c); ok {
		travelers, err := svc.ListFull()
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, gin.H{"travelers": travelers})
		return
	}
	travelers, err := svc.ListPublic()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"travelers": travelers})
}

func (h TravelerHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	t, err := h.service(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"traveler": t})
}

func (h TravelerHandler) GetByPassport(c *gin.Context) {
	t, err := h.service(c).GetByPassport(c.Param("no"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"traveler": t})
}

func (h TravelerHandler) Create(c *gin.Context) {
	var t models.Traveler
	if !bindJSON(c, &t) {
		return
	}
	created, err := h.service(c).Create(t, actorID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, gin.H{"traveler": created})
}

func (h TravelerHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var t models.Traveler
	if !bindJSON(c, &t) {
		return
	}
	updated, err := h.service(c).Update(id, t, actorID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"traveler": updated})
}

func (h TravelerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Traveler deleted"})
}

type travelerLoginRequest struct {
	PassportNo string `json:"passport_no"`
	PIN        string `json:"pin"`
}

// Login opens a traveler session; it never grants admin privileges.
func (h TravelerHandler) Login(c *gin.Context) {
	var req travelerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	t, err := h.service(c).LoginByPIN(req.PassportNo, req.PIN)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	sess := &session.Session{
		Token:            utils.NewSessionToken(),
		Kind:             session.KindTraveler,
		TravelerID:       t.ID,
		TravelerPassport: t.PassportNo,
	}
	h.Sessions.Put(sess)
	setSessionCookie(c, middleware.TravelerCookie, sess.Token, h.SessionTTL)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "traveler": t})
}

// StatsSummary feeds the dashboard cards.
func (h TravelerHandler) StatsSummary(c *gin.Context) {
	stats, err := h.service(c).StatsSummary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

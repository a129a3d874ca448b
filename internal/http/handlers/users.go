package handlers

import (
	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/services"
)

// UserHandler covers admin account administration.
type UserHandler struct{}

func (UserHandler) service(c *gin.Context) services.UserService {
	return services.UserService{RequestID: middleware.GetRequestID(c)}
}

func (h UserHandler) List(c *gin.Context) {
	users, err := h.service(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"users": users})
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u := models.AdminUser{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}
	created, err := h.service(c).Create(u, req.Password, req.Role, actorID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, gin.H{"user": created})
}

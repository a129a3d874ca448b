package handlers

import (
	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/services"
)

// CompanyHandler reads and writes the single company settings row.
type CompanyHandler struct{}

func (CompanyHandler) service(c *gin.Context) services.CompanyService {
	return services.CompanyService{RequestID: middleware.GetRequestID(c)}
}

func (h CompanyHandler) Get(c *gin.Context) {
	settings, err := h.service(c).Get()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"settings": settings})
}

func (h CompanyHandler) Update(c *gin.Context) {
	var settings models.CompanySettings
	if !bindJSON(c, &settings) {
		return
	}
	saved, err := h.service(c).Update(settings)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"settings": saved})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/services"
)

// BatchHandler exposes the batch catalogue.
type BatchHandler struct{}

func (BatchHandler) service(c *gin.Context) services.BatchService {
	return services.BatchService{RequestID: middleware.GetRequestID(c)}
}

func (h BatchHandler) List(c *gin.Context) {
	batches, err := h.service(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"batches": batches})
}

func (h BatchHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := h.service(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"batch": b})
}

func (h BatchHandler) Create(c *gin.Context) {
	var b models.Batch
	if !bindJSON(c, &b) {
		return
	}
	created, err := h.service(c).Create(b)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, gin.H{"batch": created})
}

func (h BatchHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.BatchPatch
	if !bindJSON(c, &patch) {
		return
	}
	updated, err := h.service(c).Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"batch": updated})
}

func (h BatchHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Batch deleted"})
}

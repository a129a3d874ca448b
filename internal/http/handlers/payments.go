package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/services"
)

// PaymentHandler exposes the payment ledger.
type PaymentHandler struct{}

func (PaymentHandler) service(c *gin.Context) services.PaymentService {
	return services.PaymentService{RequestID: middleware.GetRequestID(c)}
}

func (h PaymentHandler) List(c *gin.Context) {
	payments, err := h.service(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"payments": payments})
}

// Get returns one payment with its receipt when one exists.
func (h PaymentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, rec, err := h.service(c).GetWithReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	payload := gin.H{"payment": p}
	if rec != nil {
		payload["receipt"] = rec
	}
	respondOK(c, payload)
}

func (h PaymentHandler) ListByTraveler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payments, totals, err := h.service(c).ListByTraveler(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"payments": payments, "totals": totals})
}

func (h PaymentHandler) ListByBatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payments, summary, err := h.service(c).ListByBatch(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"payments": payments, "summary": summary})
}

func (h PaymentHandler) Create(c *gin.Context) {
	var p models.Payment
	if !bindJSON(c, &p) {
		return
	}
	created, err := h.service(c).Create(p, actorID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, gin.H{"payment": created})
}

func (h PaymentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var p models.Payment
	if !bindJSON(c, &p) {
		return
	}
	updated, err := h.service(c).Update(id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"payment": updated})
}

type reverseRequest struct {
	Reason string `json:"reason"`
}

func (h PaymentHandler) Reverse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req reverseRequest
	if !bindJSON(c, &req) {
		return
	}
	reversal, err := h.service(c).Reverse(id, req.Reason, actorID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"payment": reversal, "message": "Payment reversed"})
}

func (h PaymentHandler) Stats(c *gin.Context) {
	stats, err := h.service(c).Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

func (h PaymentHandler) Receipt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	rec, err := h.service(c).Receipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"receipt": rec})
}

// ReceiptPDF streams the rendered receipt.
func (h PaymentHandler) ReceiptPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.ReceiptPDFService{}
	data, filename, err := svc.Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

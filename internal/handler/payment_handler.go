package handler

import (
	"net/http"

	"collegemigration/internal/middleware"
	"collegemigration/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentSvc *service.PaymentService
}

func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Initiate handles POST /payments/initiate — records a pending payment
// attempt and returns the reference for the provider checkout.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req struct {
		ApplicationID uint  `json:"application_id" binding:"required"`
		AmountCents   int64 `json:"amount_cents" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.paymentSvc.Initiate(middleware.GetUserID(c), req.ApplicationID, req.AmountCents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reference":    t.Reference,
		"amount_cents": t.AmountCents,
		"currency":     t.Currency,
		"status":       t.Status,
	})
}

// Verify handles GET /payments/verify/:reference — client-driven
// verification after checkout redirects back.
func (h *PaymentHandler) Verify(c *gin.Context) {
	result, err := h.paymentSvc.VerifyAndSettle(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"collegemigration/config"
	"collegemigration/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentWebhookHandler receives provider callbacks. The payload is never
// trusted on its own: settlement always re-verifies the reference with
// the provider. A non-2xx response tells the provider to retry; retry
// policy lives here at the webhook layer, not in the ledger.
type PaymentWebhookHandler struct {
	paymentSvc *service.PaymentService
	cfg        *config.Config
}

func NewPaymentWebhookHandler(paymentSvc *service.PaymentService, cfg *config.Config) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{paymentSvc: paymentSvc, cfg: cfg}
}

func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if h.cfg.Payment.WebhookSecret != "" {
		if !h.verifySignature(body, c.GetHeader("X-Paystack-Signature")) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}
	var payload struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Data.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}
	result, err := h.paymentSvc.VerifyAndSettle(c.Request.Context(), payload.Data.Reference)
	if err != nil {
		log.Printf("[Webhook] settle %s: %v", payload.Data.Reference, err)
		// Provider failures are retryable; let the provider redeliver.
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "settled": result.Settled})
}

func (h *PaymentWebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(h.cfg.Payment.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

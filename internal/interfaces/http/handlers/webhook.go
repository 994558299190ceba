// internal/interfaces/http/handlers/webhook.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/domain/payment"
)

// WebhookHandler ingests payment gateway notifications
type WebhookHandler struct {
	processor *payment.Processor
	log       *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(processor *payment.Processor, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{processor: processor, log: log}
}

// HandleNotification processes one gateway notification. The gateway
// sends the payment id either in the JSON body (data.id) or as query
// parameters, depending on the notification flavor. Processing errors
// still answer 200 so the gateway does not retry storms; the error is
// logged for the reconciliation job.
func (h *WebhookHandler) HandleNotification(c *gin.Context) {
	notification := &payment.Notification{
		Topic:     c.Query("topic"),
		PaymentID: c.Query("id"),
	}
	if notification.Topic == "" {
		notification.Topic = c.Query("type")
	}

	var body struct {
		Type string `json:"type"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		if body.Type != "" {
			notification.Topic = body.Type
		}
		if body.Data.ID != "" {
			notification.PaymentID = body.Data.ID
		}
	}

	if notification.PaymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notification carries no payment id"})
		return
	}

	if err := h.processor.Process(c.Request.Context(), notification); err != nil {
		h.log.WithError(err).WithField("payment_id", notification.PaymentID).Error("webhook processing failed")
	}

	c.JSON(http.StatusOK, gin.H{"message": "received"})
}

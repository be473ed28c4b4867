package public

import (
	"io"
	"net/http"
	"time"

	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/payment/stripe"

	"github.com/gin-gonic/gin"
)

// StripeWebhook receives signed provider events. Settled checkout sessions
// are folded into the matching order through the same reconciliation path the
// storefront polls.
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		respondError(c, response.CodeBadRequest, "webhook body read failed", err)
		return
	}

	headers := map[string]string{
		"Stripe-Signature": c.GetHeader("Stripe-Signature"),
	}
	event, err := stripe.VerifyAndParseWebhook(h.StripeCfg, headers, body, time.Now())
	if err != nil {
		requestLog(c).Warnw("stripe_webhook_rejected", "error", err)
		// Signature failures get a non-200 so the provider retries are
		// visible on their side.
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	switch event.EventType {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		if event.SessionID == "" {
			break
		}
		if _, err := h.CheckoutService.ReconcileSession(c.Request.Context(), event.SessionID); err != nil {
			requestLog(c).Errorw("stripe_webhook_reconcile_failed",
				"event_id", event.EventID,
				"session_id", event.SessionID,
				"error", err,
			)
		}
	default:
		requestLog(c).Infow("stripe_webhook_ignored", "event_id", event.EventID, "event_type", event.EventType)
	}

	response.Success(c, gin.H{"received": true})
}

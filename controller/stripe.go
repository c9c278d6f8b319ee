package controller

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bounce/service"
)

// StripeController handles the payment webhook.
type StripeController struct {
	users  *service.UserService
	secret string
	now    func() time.Time
}

func NewStripeController(users *service.UserService, secret string) *StripeController {
	return &StripeController{users: users, secret: secret, now: time.Now}
}

// Webhook validates transport, timestamp and signature before touching
// any state; a verified payment event activates every workspace
// membership of the billing email.
func (ctrl *StripeController) Webhook(c *gin.Context) {
	requestId := c.GetString("requestId")

	payload, err := ctrl.normalizedPayload(c)
	if err != nil {
		logger.Warnf("[%s] 400 Bad Request - %s", requestId, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timestamp, signatures := service.ParseSignatureHeader(c.GetHeader("stripe-signature"))
	if timestamp == "" || !service.TimestampWithinTolerance(timestamp, ctrl.now()) {
		logger.Warnf("[%s] 400 Bad Request - Invalid timestamp", requestId)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp"})
		return
	}
	if !service.ContainsValidSignature(payload, timestamp, signatures, ctrl.secret) {
		logger.Warnf("[%s] 401 Unauthorized - Invalid Signature", requestId)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Signature"})
		return
	}

	var event service.StripeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		// normalizedPayload already validated the JSON; kept for safety.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	logger.Infof("[%s] payment event %s, charge status %q", requestId, event.Type, event.ChargeStatus())
	if !event.Succeeded() {
		c.JSON(http.StatusAccepted, gin.H{"message": "Ignored", "updated": 0})
		return
	}

	updated, err := ctrl.users.ActivatePaid(c.Request.Context(), event.BillingEmail(), event.PaidTimestamp())
	if err != nil {
		logger.Warnf("[%s] activation error, %s", requestId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Success", "updated": updated})
}

// normalizedPayload enforces the JSON content type, decodes an
// optionally base64-encoded body, and validates the JSON.
func (ctrl *StripeController) normalizedPayload(c *gin.Context) (string, error) {
	if c.ContentType() != "application/json" {
		return "", errInvalid("Unsupported content-type")
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		return "", errInvalid("Missing event body")
	}

	payload := string(raw)
	if strings.EqualFold(c.GetHeader("Content-Transfer-Encoding"), "base64") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			return "", errInvalid("Invalid base64 payload")
		}
		payload = string(decoded)
	}

	if !json.Valid([]byte(payload)) {
		return "", errInvalid("Invalid JSON payload")
	}
	return payload, nil
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }

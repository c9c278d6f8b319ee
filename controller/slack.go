package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"

	"bounce/config"
	"bounce/model"
	"bounce/platform"
	"bounce/service"
)

var logger = platform.Logger

// SlackController routes inbound Slack event deliveries.
type SlackController struct {
	chat     *service.ChatService
	cfg      *config.Config
	dispatch func(task func())
}

func NewSlackController(chat *service.ChatService, cfg *config.Config, dispatch func(task func())) *SlackController {
	return &SlackController{chat: chat, cfg: cfg, dispatch: dispatch}
}

// Events classifies a delivery and acks with 200 before any handler
// work runs. Benign non-events (retries, bot echoes, unlisted types)
// are acked as no-ops, never treated as errors.
func (ctrl *SlackController) Events(c *gin.Context) {
	requestId := c.GetString("requestId")

	if c.GetHeader("x-slack-retry-num") != "" {
		logger.Infof("[%s] ignoring retried delivery", requestId)
		ctrl.ack(c, "Ignore retry")
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Warnf("[%s] read body error, %s", requestId, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if ctrl.cfg.SlackSigningSecret != "" {
		if err := verifySlackSignature(c.Request.Header, raw, ctrl.cfg.SlackSigningSecret); err != nil {
			logger.Warnf("[%s] slack signature rejected, %s", requestId, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
	}

	var envelope model.SlackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logger.Warnf("[%s] invalid event payload, %s", requestId, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	// URL-verification handshake: echo the challenge verbatim.
	if envelope.Challenge != "" {
		c.JSON(http.StatusOK, gin.H{"challenge": envelope.Challenge})
		return
	}

	ev := envelope.Event
	if ev == nil {
		ctrl.ack(c, "Ignore event")
		return
	}
	if ev.BotID != "" {
		ctrl.ack(c, "Ignore bot")
		return
	}
	if !ctrl.cfg.EventAllowed(ev.Type) {
		logger.Infof("[%s] ignoring event type %s", requestId, ev.Type)
		ctrl.ack(c, "Ignore event")
		return
	}

	if ev.Team == "" {
		ev.Team = envelope.TeamID
	}

	event := *ev
	switch event.Type {
	case "app_mention":
		ctrl.dispatch(func() {
			if err := ctrl.chat.HandleMention(context.Background(), &event); err != nil {
				logger.Warnf("[%s] app_mention handler error, %s", requestId, err)
			}
		})
	case "message":
		ctrl.dispatch(func() {
			if err := ctrl.chat.HandleMessage(context.Background(), &event); err != nil {
				logger.Warnf("[%s] message handler error, %s", requestId, err)
			}
		})
	case "app_home_opened":
		ctrl.dispatch(func() {
			if err := ctrl.chat.HandleHomeOpened(context.Background(), &event); err != nil {
				logger.Warnf("[%s] app_home_opened handler error, %s", requestId, err)
			}
		})
	}

	ctrl.ack(c, "Success")
}

// ack answers 200 and asks Slack not to redeliver.
func (ctrl *SlackController) ack(c *gin.Context, message string) {
	c.Header("X-Slack-No-Retry", "1")
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func verifySlackSignature(header http.Header, body []byte, secret string) error {
	verifier, err := slack.NewSecretsVerifier(header, secret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}

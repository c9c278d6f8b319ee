package platform

import (
	"github.com/slack-go/slack"

	"bounce/config"
)

var (
	SlackClient *slack.Client
)

func InitSlackClient(cfg *config.Config) {
	SlackClient = slack.New(cfg.SlackBotToken)
}

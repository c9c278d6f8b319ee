package model

// SlackEnvelope is the outer payload of a Slack Events API delivery.
type SlackEnvelope struct {
	Type      string      `json:"type"`
	Token     string      `json:"token"`
	Challenge string      `json:"challenge"`
	TeamID    string      `json:"team_id"`
	Event     *SlackEvent `json:"event"`
}

// SlackEvent is the inner event body.
type SlackEvent struct {
	Type        string `json:"type"`
	BotID       string `json:"bot_id"`
	Team        string `json:"team"`
	Channel     string `json:"channel"`
	ChannelType string `json:"channel_type"`
	User        string `json:"user"`
	Text        string `json:"text"`
	ThreadTS    string `json:"thread_ts"`
	TS          string `json:"ts"`
	EventTS     string `json:"event_ts"`
}

// ReplyThreadTS returns the thread the bot should answer in: the
// existing thread when there is one, otherwise the triggering message.
func (ev *SlackEvent) ReplyThreadTS() string {
	if ev.ThreadTS != "" {
		return ev.ThreadTS
	}
	return ev.TS
}

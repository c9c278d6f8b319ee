package service

import (
	"github.com/slack-go/slack"
)

// Messenger is the outbound Slack surface the services depend on.
type Messenger interface {
	// Post sends text to a channel; a non-empty threadTS answers in
	// that thread.
	Post(channel, threadTS, text string) error

	// PublishHome publishes the home tab view for a user.
	PublishHome(userID string, view slack.HomeTabViewRequest) error

	// UserEmail resolves a user's profile email via users.info.
	UserEmail(userID string) (string, error)
}

// SlackMessenger implements Messenger on the Slack Web API client.
type SlackMessenger struct {
	client *slack.Client
}

func NewSlackMessenger(client *slack.Client) *SlackMessenger {
	return &SlackMessenger{client: client}
}

func (m *SlackMessenger) Post(channel, threadTS, text string) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	_, _, err := m.client.PostMessage(channel, opts...)
	return err
}

func (m *SlackMessenger) PublishHome(userID string, view slack.HomeTabViewRequest) error {
	_, err := m.client.PublishView(userID, view, "")
	return err
}

func (m *SlackMessenger) UserEmail(userID string) (string, error) {
	info, err := m.client.GetUserInfo(userID)
	if err != nil {
		return "", err
	}
	return info.Profile.Email, nil
}

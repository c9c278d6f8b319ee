package controller

import (
	"context"

	"github.com/slack-go/slack"

	"bounce/config"
	"bounce/model"
	"bounce/service"
	"bounce/store"
)

type postedMessage struct {
	Channel  string
	ThreadTS string
	Text     string
}

type fakeMessenger struct {
	posts []postedMessage
	homes []string
	email string
}

func (f *fakeMessenger) Post(channel, threadTS, text string) error {
	f.posts = append(f.posts, postedMessage{Channel: channel, ThreadTS: threadTS, Text: text})
	return nil
}

func (f *fakeMessenger) PublishHome(userID string, view slack.HomeTabViewRequest) error {
	f.homes = append(f.homes, userID)
	return nil
}

func (f *fakeMessenger) UserEmail(userID string) (string, error) {
	return f.email, nil
}

type fakeCompletions struct {
	reply string
}

func (f *fakeCompletions) Complete(ctx context.Context, conv model.Conversation) string {
	return f.reply
}

func testConfig() *config.Config {
	return &config.Config{
		MaxChatLength: 21,
		SlackEvents:   []string{"app_mention", "message", "app_home_opened"},
		FreeTrialDays: 14,
	}
}

// syncDispatch runs handler tasks inline so tests can assert on their
// effects right after the request returns.
func syncDispatch(task func()) { task() }

func newEventFixture() (*SlackController, *store.MemoryStore, *fakeMessenger) {
	st := store.NewMemory()
	messenger := &fakeMessenger{email: "tester@example.com"}
	users := service.NewUserService(st, messenger)
	chat := service.NewChatService(st, users, &fakeCompletions{reply: "hi there"}, messenger, 21, service.HomeConfig{})
	ctrl := NewSlackController(chat, testConfig(), syncDispatch)
	return ctrl, st, messenger
}

package service

import (
	"context"

	"github.com/slack-go/slack"

	"bounce/model"
)

type postedMsg struct {
	Channel  string
	ThreadTS string
	Text     string
}

type publishedHome struct {
	UserID string
	View   slack.HomeTabViewRequest
}

// fakeMessenger records outbound Slack calls.
type fakeMessenger struct {
	posts    []postedMsg
	homes    []publishedHome
	email    string
	emailErr error
	postErr  error
}

func (f *fakeMessenger) Post(channel, threadTS, text string) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.posts = append(f.posts, postedMsg{Channel: channel, ThreadTS: threadTS, Text: text})
	return nil
}

func (f *fakeMessenger) PublishHome(userID string, view slack.HomeTabViewRequest) error {
	f.homes = append(f.homes, publishedHome{UserID: userID, View: view})
	return nil
}

func (f *fakeMessenger) UserEmail(string) (string, error) {
	if f.emailErr != nil {
		return "", f.emailErr
	}
	return f.email, nil
}

// fakeCompletions answers with a fixed reply and counts calls.
type fakeCompletions struct {
	reply string
	calls int
}

func (f *fakeCompletions) Complete(context.Context, model.Conversation) string {
	f.calls++
	return f.reply
}

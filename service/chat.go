package service

import (
	"context"
	"fmt"

	"bounce/model"
	"bounce/store"
)

// InactiveMessage replaces the model reply once a user's trial has ended.
const InactiveMessage = "We're thrilled you've been enjoying Bounce! Your free trial has wrapped up, but there's more value in store. Swing by the Home tab to continue taking advantage of enhanced productivity – subscribe now to keep bouncing with us! :rocket:"

// ChatService drives the conversation flows behind the Slack events.
type ChatService struct {
	store     store.Store
	users     *UserService
	llm       Completions
	slack     Messenger
	maxLength int
	home      HomeConfig
}

func NewChatService(st store.Store, users *UserService, llm Completions, api Messenger, maxLength int, home HomeConfig) *ChatService {
	return &ChatService{
		store:     st,
		users:     users,
		llm:       llm,
		slack:     api,
		maxLength: maxLength,
		home:      home,
	}
}

// HandleMention answers an app_mention in the channel thread, keyed by
// {team}-{channel}-{thread_ts}.
func (s *ChatService) HandleMention(ctx context.Context, ev *model.SlackEvent) error {
	user, err := s.users.Resolve(ctx, ev.Team, ev.User)
	if err != nil {
		return fmt.Errorf("handle mention: %w", err)
	}

	threadTS := ev.ReplyThreadTS()
	if !user.Active {
		return s.slack.Post(ev.Channel, threadTS, InactiveMessage)
	}

	chatID := model.PublicChatID(ev)
	return s.converse(ctx, model.PublicChat, chatID, ev.Text, func(reply string) error {
		return s.slack.Post(ev.Channel, threadTS, reply)
	})
}

// HandleMessage answers a direct message, keyed by
// {team}-{channel}-{user}. Non-IM message events are ignored.
func (s *ChatService) HandleMessage(ctx context.Context, ev *model.SlackEvent) error {
	if ev.ChannelType != "im" {
		return nil
	}

	user, err := s.users.Resolve(ctx, ev.Team, ev.User)
	if err != nil {
		return fmt.Errorf("handle message: %w", err)
	}
	if !user.Active {
		return s.slack.Post(ev.Channel, "", InactiveMessage)
	}

	chatID := model.PrivateChatID(ev)
	return s.converse(ctx, model.PrivateChat, chatID, ev.Text, func(reply string) error {
		return s.slack.Post(ev.Channel, "", reply)
	})
}

// converse runs the shared read-append-complete-reply-trim-save cycle.
// The transcript is persisted only after the reply went out, so a
// failed post leaves no partial state behind.
func (s *ChatService) converse(ctx context.Context, kind model.ChatKind, chatID, text string, post func(reply string) error) error {
	conv, err := s.store.GetConversation(ctx, kind, chatID)
	if err != nil {
		return err
	}
	if conv == nil {
		logger.Infof("[chat] starting new %s chat: %s", kind, chatID)
		conv = model.StartConversation()
	} else {
		logger.Infof("[chat] retrieved existing %s chat: %s", kind, chatID)
	}

	conv = conv.Add(model.RoleUser, text)
	reply := s.llm.Complete(ctx, conv)
	if err := post(reply); err != nil {
		return fmt.Errorf("post reply for %s: %w", chatID, err)
	}
	conv = conv.Add(model.RoleAssistant, reply).Trim(s.maxLength)
	return s.store.SaveConversation(ctx, kind, chatID, conv)
}

// HandleHomeOpened publishes the home tab view for the user's plan state.
func (s *ChatService) HandleHomeOpened(ctx context.Context, ev *model.SlackEvent) error {
	user, err := s.users.Resolve(ctx, ev.Team, ev.User)
	if err != nil {
		return fmt.Errorf("handle home opened: %w", err)
	}
	view := HomeView(s.home, user.PlanType, user.Active)
	if err := s.slack.PublishHome(ev.User, view); err != nil {
		return fmt.Errorf("publish home view for %s: %w", ev.User, err)
	}
	return nil
}

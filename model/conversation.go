package model

import "fmt"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemPrompt seeds every new conversation.
const SystemPrompt = "You are a helpful assistant."

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role" dynamodbav:"role"`
	Content string `json:"content" dynamodbav:"content"`
}

// Conversation is an ordered sequence of turns. The first turn is
// always the system turn.
type Conversation []Turn

// StartConversation returns a new conversation holding only the system turn.
func StartConversation() Conversation {
	return Conversation{
		{Role: RoleSystem, Content: SystemPrompt},
	}
}

// Add appends a turn and returns the conversation.
func (c Conversation) Add(role, content string) Conversation {
	return append(c, Turn{Role: role, Content: content})
}

// Trim drops the oldest user/assistant exchange (positions 1 and 2)
// until the conversation fits maxLength. The system turn at position 0
// is never removed.
func (c Conversation) Trim(maxLength int) Conversation {
	for len(c) > maxLength && len(c) > 2 {
		c = append(c[:1], c[3:]...)
	}
	return c
}

// ChatKind selects the conversation table.
type ChatKind string

const (
	PublicChat  ChatKind = "public"
	PrivateChat ChatKind = "private"
)

// PublicChatID keys a thread-scoped conversation: {team}-{channel}-{thread_ts}.
// A mention outside a thread starts one keyed by the message ts.
func PublicChatID(ev *SlackEvent) string {
	threadTS := ev.ThreadTS
	if threadTS == "" {
		threadTS = ev.TS
	}
	return fmt.Sprintf("%s-%s-%s", ev.Team, ev.Channel, threadTS)
}

// PrivateChatID keys a direct-message conversation: {team}-{channel}-{user}.
func PrivateChatID(ev *SlackEvent) string {
	return fmt.Sprintf("%s-%s-%s", ev.Team, ev.Channel, ev.User)
}

// SlackID keys a user record: {team}-{user}.
func SlackID(team, user string) string {
	return fmt.Sprintf("%s-%s", team, user)
}

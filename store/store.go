// Package store provides the key-value persistence interfaces and drivers.
package store

import (
	"context"

	"bounce/model"
)

// ConversationStore persists conversation transcripts by composite id.
// Writes are last-write-wins; concurrent writers to the same id may race.
type ConversationStore interface {
	// GetConversation returns the stored transcript, or nil when the id
	// has never been saved.
	GetConversation(ctx context.Context, kind model.ChatKind, id string) (model.Conversation, error)

	// SaveConversation overwrites the transcript for the id.
	SaveConversation(ctx context.Context, kind model.ChatKind, id string, conv model.Conversation) error
}

// UserStore persists subscription records keyed by SlackID and the
// email membership index.
type UserStore interface {
	// GetUser returns the record for a SlackID, or nil when absent.
	GetUser(ctx context.Context, slackID string) (*model.UserRecord, error)

	// PutUser creates or overwrites a user record.
	PutUser(ctx context.Context, user *model.UserRecord) error

	// GetEmail returns the membership record for an email, or nil when absent.
	GetEmail(ctx context.Context, email string) (*model.EmailRecord, error)

	// PutEmail creates or overwrites an email membership record.
	PutEmail(ctx context.Context, rec *model.EmailRecord) error

	// ListActiveTrials returns every record with plan_type=trial and
	// active=true, for the expiry sweep.
	ListActiveTrials(ctx context.Context) ([]*model.UserRecord, error)
}

// Store is the full persistence surface the services depend on.
type Store interface {
	ConversationStore
	UserStore
}

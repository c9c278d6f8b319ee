package store

import (
	"context"
	"sync"

	"bounce/model"
)

// MemoryStore is an in-process Store for tests and local runs. It is
// not a durable backend; production deployments use DynamoDB or MySQL.
type MemoryStore struct {
	mu     sync.RWMutex
	chats  map[string]model.Conversation
	users  map[string]*model.UserRecord
	emails map[string]*model.EmailRecord
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		chats:  make(map[string]model.Conversation),
		users:  make(map[string]*model.UserRecord),
		emails: make(map[string]*model.EmailRecord),
	}
}

func chatKey(kind model.ChatKind, id string) string {
	return string(kind) + "/" + id
}

func (s *MemoryStore) GetConversation(_ context.Context, kind model.ChatKind, id string) (model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.chats[chatKey(kind, id)]
	if !ok {
		return nil, nil
	}
	out := make(model.Conversation, len(conv))
	copy(out, conv)
	return out, nil
}

func (s *MemoryStore) SaveConversation(_ context.Context, kind model.ChatKind, id string, conv model.Conversation) error {
	stored := make(model.Conversation, len(conv))
	copy(stored, conv)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatKey(kind, id)] = stored
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, slackID string) (*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[slackID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) PutUser(_ context.Context, user *model.UserRecord) error {
	cp := *user
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.SlackID] = &cp
	return nil
}

func (s *MemoryStore) GetEmail(_ context.Context, email string) (*model.EmailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.emails[email]
	if !ok {
		return nil, nil
	}
	cp := model.EmailRecord{Email: rec.Email, Workspaces: append([]string(nil), rec.Workspaces...)}
	return &cp, nil
}

func (s *MemoryStore) PutEmail(_ context.Context, rec *model.EmailRecord) error {
	cp := model.EmailRecord{Email: rec.Email, Workspaces: append([]string(nil), rec.Workspaces...)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails[rec.Email] = &cp
	return nil
}

func (s *MemoryStore) ListActiveTrials(_ context.Context) ([]*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.UserRecord
	for _, rec := range s.users {
		if rec.PlanType == model.PlanTrial && rec.Active {
			cp := *rec
			records = append(records, &cp)
		}
	}
	return records, nil
}

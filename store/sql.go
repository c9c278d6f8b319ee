package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bounce/model"
)

// conversationRow persists a transcript as a JSON column keyed by the
// composite chat id.
type conversationRow struct {
	ChatID    string    `gorm:"primaryKey;type:varchar(191)"`
	Kind      string    `gorm:"primaryKey;type:varchar(16)"`
	Turns     string    `gorm:"type:longtext"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type userRow struct {
	SlackID               string    `gorm:"primaryKey;type:varchar(191)"`
	Email                 string    `gorm:"type:varchar(255);index"`
	Active                bool      `gorm:"index:idx_plan_active"`
	PlanType              string    `gorm:"type:varchar(16);index:idx_plan_active"`
	SlackInstallTimestamp int64
	StripePaidTimestamp   int64
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

type emailRow struct {
	Email      string    `gorm:"primaryKey;type:varchar(191)"`
	Workspaces string    `gorm:"type:text"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// SQLStore implements Store on MySQL through gorm, for deployments
// without DynamoDB.
type SQLStore struct {
	db *gorm.DB
}

// NewSQL migrates the schema and returns the store.
func NewSQL(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&conversationRow{}, &userRow{}, &emailRow{}); err != nil {
		return nil, fmt.Errorf("migrate store schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) GetConversation(ctx context.Context, kind model.ChatKind, id string) (model.Conversation, error) {
	var row conversationRow
	err := s.db.WithContext(ctx).
		Where("chat_id = ? AND kind = ?", id, string(kind)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	var conv model.Conversation
	if err := json.Unmarshal([]byte(row.Turns), &conv); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return conv, nil
}

func (s *SQLStore) SaveConversation(ctx context.Context, kind model.ChatKind, id string, conv model.Conversation) error {
	turns, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", id, err)
	}
	row := conversationRow{ChatID: id, Kind: string(kind), Turns: string(turns)}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save conversation %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) GetUser(ctx context.Context, slackID string) (*model.UserRecord, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("slack_id = ?", slackID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", slackID, err)
	}
	return rowToUser(&row), nil
}

func (s *SQLStore) PutUser(ctx context.Context, user *model.UserRecord) error {
	row := userRow{
		SlackID:               user.SlackID,
		Email:                 user.Email,
		Active:                user.Active,
		PlanType:              user.PlanType,
		SlackInstallTimestamp: user.SlackInstallTimestamp,
		StripePaidTimestamp:   user.StripePaidTimestamp,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("put user %s: %w", user.SlackID, err)
	}
	return nil
}

func (s *SQLStore) GetEmail(ctx context.Context, email string) (*model.EmailRecord, error) {
	var row emailRow
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get email %s: %w", email, err)
	}
	rec := model.EmailRecord{Email: row.Email}
	if row.Workspaces != "" {
		if err := json.Unmarshal([]byte(row.Workspaces), &rec.Workspaces); err != nil {
			return nil, fmt.Errorf("decode workspaces for %s: %w", email, err)
		}
	}
	return &rec, nil
}

func (s *SQLStore) PutEmail(ctx context.Context, rec *model.EmailRecord) error {
	workspaces, err := json.Marshal(rec.Workspaces)
	if err != nil {
		return fmt.Errorf("encode workspaces for %s: %w", rec.Email, err)
	}
	row := emailRow{Email: rec.Email, Workspaces: string(workspaces)}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("put email %s: %w", rec.Email, err)
	}
	return nil
}

func (s *SQLStore) ListActiveTrials(ctx context.Context) ([]*model.UserRecord, error) {
	var rows []userRow
	err := s.db.WithContext(ctx).
		Where("plan_type = ? AND active = ?", model.PlanTrial, true).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list active trials: %w", err)
	}
	records := make([]*model.UserRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rowToUser(&rows[i]))
	}
	return records, nil
}

func rowToUser(row *userRow) *model.UserRecord {
	return &model.UserRecord{
		SlackID:               row.SlackID,
		Email:                 row.Email,
		Active:                row.Active,
		PlanType:              row.PlanType,
		SlackInstallTimestamp: row.SlackInstallTimestamp,
		StripePaidTimestamp:   row.StripePaidTimestamp,
	}
}

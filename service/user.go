package service

import (
	"context"
	"fmt"
	"time"

	"bounce/model"
	"bounce/store"
)

// UserService resolves and mutates subscription records.
type UserService struct {
	store store.UserStore
	slack Messenger
}

func NewUserService(st store.UserStore, api Messenger) *UserService {
	return &UserService{store: st, slack: api}
}

// Resolve returns the user record for (team, user), creating a trial
// record on first sight. New users get an install timestamp and, when
// their email can be resolved, a workspace membership under that email.
func (s *UserService) Resolve(ctx context.Context, team, userID string) (*model.UserRecord, error) {
	slackID := model.SlackID(team, userID)
	rec, err := s.store.GetUser(ctx, slackID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}

	email := s.lookupEmail(userID)
	rec = &model.UserRecord{
		SlackID:               slackID,
		Email:                 email,
		Active:                true,
		PlanType:              model.PlanTrial,
		SlackInstallTimestamp: time.Now().UTC().Unix(),
	}
	if email != "" {
		if err := s.addMembership(ctx, email, slackID); err != nil {
			return nil, err
		}
	}
	if err := s.store.PutUser(ctx, rec); err != nil {
		return nil, err
	}
	logger.Infof("[user] created trial record %s", slackID)
	return rec, nil
}

// lookupEmail asks the Slack users.info API; a failure degrades to an
// empty email rather than blocking the conversation.
func (s *UserService) lookupEmail(userID string) string {
	email, err := s.slack.UserEmail(userID)
	if err != nil {
		logger.Warnf("[user] users.info %s error: %s", userID, err)
		return ""
	}
	return email
}

func (s *UserService) addMembership(ctx context.Context, email, slackID string) error {
	rec, err := s.store.GetEmail(ctx, email)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &model.EmailRecord{Email: email}
	}
	if !rec.HasWorkspace(slackID) {
		rec.Workspaces = append(rec.Workspaces, slackID)
	}
	return s.store.PutEmail(ctx, rec)
}

// ActivatePaid flips every workspace membership of the billing email to
// an active paid plan and records the payment timestamp. Returns the
// number of records updated.
func (s *UserService) ActivatePaid(ctx context.Context, email string, paidAt int64) (int, error) {
	if email == "" {
		logger.Warnf("[user] payment event without billing email, nothing to activate")
		return 0, nil
	}
	rec, err := s.store.GetEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if rec == nil || len(rec.Workspaces) == 0 {
		logger.Warnf("[user] no workspace memberships for %s", email)
		return 0, nil
	}

	updated := 0
	for _, slackID := range rec.Workspaces {
		user, err := s.store.GetUser(ctx, slackID)
		if err != nil {
			return updated, fmt.Errorf("activate %s: %w", slackID, err)
		}
		if user == nil {
			user = &model.UserRecord{SlackID: slackID, Email: email}
		}
		user.Active = true
		user.PlanType = model.PlanPaid
		user.StripePaidTimestamp = paidAt
		if err := s.store.PutUser(ctx, user); err != nil {
			return updated, fmt.Errorf("activate %s: %w", slackID, err)
		}
		updated++
	}
	logger.Infof("[user] activated paid plan for %s in %d workspace(s)", email, updated)
	return updated, nil
}

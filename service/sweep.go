package service

import (
	"context"
	"time"

	"bounce/model"
	"bounce/store"
)

// SweepService expires free trials past the configured trial length.
type SweepService struct {
	store     store.UserStore
	trialDays int
}

func NewSweepService(st store.UserStore, trialDays int) *SweepService {
	return &SweepService{store: st, trialDays: trialDays}
}

// trialCompleted reports whether the record's trial window has elapsed.
// Records without an install timestamp are not expirable.
func (s *SweepService) trialCompleted(rec *model.UserRecord, now time.Time) bool {
	if rec.SlackInstallTimestamp == 0 {
		logger.Warnf("[sweep] record %s missing install timestamp", rec.SlackID)
		return false
	}
	installed := time.Unix(rec.SlackInstallTimestamp, 0)
	return installed.Before(now.Add(-time.Duration(s.trialDays) * 24 * time.Hour))
}

// ExpireTrials walks all active trial records and deactivates the ones
// whose trial window has elapsed. Returns the number deactivated.
func (s *SweepService) ExpireTrials(ctx context.Context) (int, error) {
	records, err := s.store.ListActiveTrials(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	expired := 0
	for _, rec := range records {
		if !s.trialCompleted(rec, now) {
			continue
		}
		rec.Active = false
		if err := s.store.PutUser(ctx, rec); err != nil {
			return expired, err
		}
		logger.Infof("[sweep] trial expired for %s", rec.SlackID)
		expired++
	}
	logger.Infof("[sweep] processed %d trial record(s), expired %d", len(records), expired)
	return expired, nil
}

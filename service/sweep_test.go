package service

import (
	"context"
	"testing"
	"time"

	"bounce/model"
	"bounce/store"
)

const trialDays = 14

func installDaysAgo(days int) int64 {
	return time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour).Unix()
}

func TestExpireTrialsFlipsElapsedTrials(t *testing.T) {
	st := store.NewMemory()
	sweep := NewSweepService(st, trialDays)
	ctx := context.Background()

	if err := st.PutUser(ctx, &model.UserRecord{
		SlackID:               "T1-expired",
		Active:                true,
		PlanType:              model.PlanTrial,
		SlackInstallTimestamp: installDaysAgo(trialDays + 1),
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.PutUser(ctx, &model.UserRecord{
		SlackID:               "T1-ongoing",
		Active:                true,
		PlanType:              model.PlanTrial,
		SlackInstallTimestamp: installDaysAgo(trialDays - 1),
	}); err != nil {
		t.Fatal(err)
	}

	expired, err := sweep.ExpireTrials(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expiry, got %d", expired)
	}

	rec, _ := st.GetUser(ctx, "T1-expired")
	if rec.Active {
		t.Fatalf("elapsed trial still active: %+v", rec)
	}
	rec, _ = st.GetUser(ctx, "T1-ongoing")
	if !rec.Active {
		t.Fatalf("ongoing trial was deactivated: %+v", rec)
	}
}

func TestExpireTrialsSkipsMissingInstallTimestamp(t *testing.T) {
	st := store.NewMemory()
	sweep := NewSweepService(st, trialDays)
	ctx := context.Background()

	if err := st.PutUser(ctx, &model.UserRecord{
		SlackID:  "T1-no-ts",
		Active:   true,
		PlanType: model.PlanTrial,
	}); err != nil {
		t.Fatal(err)
	}

	expired, err := sweep.ExpireTrials(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 0 {
		t.Fatalf("record without install timestamp must not expire, got %d", expired)
	}
	rec, _ := st.GetUser(ctx, "T1-no-ts")
	if !rec.Active {
		t.Fatalf("record was deactivated: %+v", rec)
	}
}

func TestExpireTrialsIgnoresPaidAndInactive(t *testing.T) {
	st := store.NewMemory()
	sweep := NewSweepService(st, trialDays)
	ctx := context.Background()

	if err := st.PutUser(ctx, &model.UserRecord{
		SlackID:               "T1-paid",
		Active:                true,
		PlanType:              model.PlanPaid,
		SlackInstallTimestamp: installDaysAgo(100),
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.PutUser(ctx, &model.UserRecord{
		SlackID:               "T1-already-off",
		Active:                false,
		PlanType:              model.PlanTrial,
		SlackInstallTimestamp: installDaysAgo(100),
	}); err != nil {
		t.Fatal(err)
	}

	expired, err := sweep.ExpireTrials(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 0 {
		t.Fatalf("expected no expiries, got %d", expired)
	}
	rec, _ := st.GetUser(ctx, "T1-paid")
	if !rec.Active {
		t.Fatalf("paid record was deactivated: %+v", rec)
	}
}

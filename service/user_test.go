package service

import (
	"context"
	"errors"
	"testing"

	"bounce/model"
	"bounce/store"
)

func TestResolveCreatesTrialWithMembership(t *testing.T) {
	st := store.NewMemory()
	messenger := &fakeMessenger{email: "dev@example.com"}
	users := NewUserService(st, messenger)
	ctx := context.Background()

	rec, err := users.Resolve(ctx, "T1", "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.SlackID != "T1-U1" || rec.PlanType != model.PlanTrial || !rec.Active {
		t.Fatalf("unexpected record: %+v", rec)
	}

	email, err := st.GetEmail(ctx, "dev@example.com")
	if err != nil || email == nil {
		t.Fatalf("membership record not created: %v", err)
	}
	if !email.HasWorkspace("T1-U1") {
		t.Fatalf("workspace membership missing: %+v", email)
	}
}

func TestResolveReturnsExistingRecord(t *testing.T) {
	st := store.NewMemory()
	users := NewUserService(st, &fakeMessenger{email: "other@example.com"})
	ctx := context.Background()

	seed := &model.UserRecord{SlackID: "T1-U1", Email: "dev@example.com", Active: false, PlanType: model.PlanTrial}
	if err := st.PutUser(ctx, seed); err != nil {
		t.Fatal(err)
	}

	rec, err := users.Resolve(ctx, "T1", "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Email != "dev@example.com" || rec.Active {
		t.Fatalf("existing record should be returned untouched: %+v", rec)
	}
}

func TestResolveToleratesUsersInfoFailure(t *testing.T) {
	st := store.NewMemory()
	users := NewUserService(st, &fakeMessenger{emailErr: errors.New("users.info unavailable")})
	ctx := context.Background()

	rec, err := users.Resolve(ctx, "T1", "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Email != "" || rec.PlanType != model.PlanTrial {
		t.Fatalf("expected trial record with empty email, got %+v", rec)
	}
}

func TestActivatePaidUpdatesAllWorkspaces(t *testing.T) {
	st := store.NewMemory()
	users := NewUserService(st, &fakeMessenger{})
	ctx := context.Background()

	if err := st.PutEmail(ctx, &model.EmailRecord{
		Email:      "dev@example.com",
		Workspaces: []string{"T1-U1", "T2-U9"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.PutUser(ctx, &model.UserRecord{SlackID: "T1-U1", Email: "dev@example.com", Active: false, PlanType: model.PlanTrial}); err != nil {
		t.Fatal(err)
	}
	if err := st.PutUser(ctx, &model.UserRecord{SlackID: "T2-U9", Email: "dev@example.com", Active: true, PlanType: model.PlanTrial}); err != nil {
		t.Fatal(err)
	}

	updated, err := users.ActivatePaid(ctx, "dev@example.com", 1700000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updates, got %d", updated)
	}

	for _, slackID := range []string{"T1-U1", "T2-U9"} {
		rec, _ := st.GetUser(ctx, slackID)
		if rec == nil || !rec.Active || rec.PlanType != model.PlanPaid {
			t.Fatalf("record %s not activated: %+v", slackID, rec)
		}
		if rec.StripePaidTimestamp != 1700000000 {
			t.Fatalf("payment timestamp not recorded on %s: %+v", slackID, rec)
		}
	}
}

func TestActivatePaidUnknownEmail(t *testing.T) {
	st := store.NewMemory()
	users := NewUserService(st, &fakeMessenger{})

	updated, err := users.ActivatePaid(context.Background(), "nobody@example.com", 1700000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected no updates, got %d", updated)
	}
}

func TestActivatePaidEmptyEmail(t *testing.T) {
	st := store.NewMemory()
	users := NewUserService(st, &fakeMessenger{})

	updated, err := users.ActivatePaid(context.Background(), "", 1700000000)
	if err != nil || updated != 0 {
		t.Fatalf("empty email must be a no-op, got %d, %v", updated, err)
	}
}

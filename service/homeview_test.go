package service

import (
	"testing"

	"github.com/slack-go/slack"

	"bounce/model"
)

func countActionBlocks(view slack.HomeTabViewRequest) int {
	n := 0
	for _, b := range view.Blocks.BlockSet {
		if _, ok := b.(*slack.ActionBlock); ok {
			n++
		}
	}
	return n
}

func TestHomeViewPaidPlanHidesUpgradeButtons(t *testing.T) {
	view := HomeView(HomeConfig{AppURL: "https://example.com/install"}, model.PlanPaid, true)

	if view.CallbackID != "home_view" {
		t.Fatalf("unexpected callback id: %q", view.CallbackID)
	}
	// Only the update button remains for paying users.
	if got := countActionBlocks(view); got != 1 {
		t.Fatalf("expected 1 action block, got %d", got)
	}
}

func TestHomeViewTrialShowsUpgradeButtons(t *testing.T) {
	cfg := HomeConfig{
		AppURL:       "https://example.com/install",
		MonthlyLink:  "https://buy.example.com/monthly",
		AnnualLink:   "https://buy.example.com/annual",
		LifetimeLink: "https://buy.example.com/lifetime",
	}

	for _, active := range []bool{true, false} {
		view := HomeView(cfg, model.PlanTrial, active)
		if got := countActionBlocks(view); got != 4 {
			t.Fatalf("active=%v: expected 4 action blocks, got %d", active, got)
		}
	}
}

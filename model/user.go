package model

// Plan types a user record can carry.
const (
	PlanFree  = "free"
	PlanTrial = "trial"
	PlanPaid  = "paid"
)

// UserRecord tracks one Slack user's subscription state, keyed by
// SlackID ({team}-{user}).
type UserRecord struct {
	SlackID               string `json:"slack_id" dynamodbav:"slack_id"`
	Email                 string `json:"email" dynamodbav:"email"`
	Active                bool   `json:"active" dynamodbav:"active"`
	PlanType              string `json:"plan_type" dynamodbav:"plan_type"`
	SlackInstallTimestamp int64  `json:"slack_install_timestamp" dynamodbav:"slack_install_timestamp"`
	StripePaidTimestamp   int64  `json:"stripe_paid_timestamp,omitempty" dynamodbav:"stripe_paid_timestamp,omitempty"`
}

// EmailRecord maps a billing email to its workspace memberships
// (SlackIDs), so a payment can activate every workspace the user
// installed the app in.
type EmailRecord struct {
	Email      string   `json:"email" dynamodbav:"email"`
	Workspaces []string `json:"workspaces" dynamodbav:"workspaces"`
}

// HasWorkspace reports whether slackID is already a membership.
func (r *EmailRecord) HasWorkspace(slackID string) bool {
	for _, w := range r.Workspaces {
		if w == slackID {
			return true
		}
	}
	return false
}

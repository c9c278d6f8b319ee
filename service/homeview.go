package service

import (
	"github.com/slack-go/slack"

	"bounce/model"
)

// HomeConfig carries the outbound links rendered on the home tab.
type HomeConfig struct {
	AppURL       string
	MonthlyLink  string
	AnnualLink   string
	LifetimeLink string
}

func mrkdwnSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func linkButton(text, url string) *slack.ActionBlock {
	button := &slack.ButtonBlockElement{
		Type: slack.METButton,
		Text: slack.NewTextBlockObject(slack.PlainTextType, text, false, false),
		URL:  url,
	}
	return slack.NewActionBlock("", button)
}

// HomeView renders the home tab for a plan state. Users not on the paid
// plan see the upgrade buttons.
func HomeView(cfg HomeConfig, planType string, active bool) slack.HomeTabViewRequest {
	blocks := []slack.Block{
		mrkdwnSection(":wave: Hi! I'm Bounce, your ChatGPT for Slack app!"),
		mrkdwnSection("We are always improving! Click the button below to get the latest features."),
		linkButton("Update now", cfg.AppURL),
	}

	if planType == model.PlanPaid {
		blocks = append(blocks, mrkdwnSection("Thanks for subscribing! Please share with your friends and colleagues!"))
		return homeTab(blocks)
	}

	if planType == model.PlanTrial {
		if active {
			blocks = append(blocks, mrkdwnSection("We hope you are enjoying your free trial!"))
		} else {
			blocks = append(blocks, mrkdwnSection("Your free trial has expired. Subscribe now to continue using Bounce."))
		}
	}

	blocks = append(blocks,
		mrkdwnSection("Click one of the buttons below to start your subscription!"),
		linkButton("Lifetime access for only $100", cfg.LifetimeLink),
		linkButton("Annual access for $50/year", cfg.AnnualLink),
		linkButton("Monthly access for $5/month", cfg.MonthlyLink),
	)
	return homeTab(blocks)
}

func homeTab(blocks []slack.Block) slack.HomeTabViewRequest {
	return slack.HomeTabViewRequest{
		Type:       slack.VTHomeTab,
		CallbackID: "home_view",
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

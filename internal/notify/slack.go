package notify

import (
	"context"
	"fmt"

	slacklib "github.com/slack-go/slack"

	"github.com/lotwise/dealerd/internal/domain"
)

// SlackAPI abstracts the subset of the Slack client used by SlackNotifier.
// This allows testing without real HTTP calls.
type SlackAPI interface {
	PostMessage(channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// SlackNotifier posts new-lead summaries to a fixed Slack channel.
type SlackNotifier struct {
	api     SlackAPI
	channel string
}

// Compile-time interface check.
var _ LeadNotifier = (*SlackNotifier)(nil) //nolint:gochecknoglobals // compile-time check

func NewSlackNotifier(api SlackAPI, channel string) *SlackNotifier {
	return &SlackNotifier{api: api, channel: channel}
}

func (n *SlackNotifier) NotifyLead(_ context.Context, dealer *domain.Dealer, lead *domain.Lead) error {
	blocks := BuildLeadBlocks(dealer, lead)

	_, _, err := n.api.PostMessage(n.channel,
		slacklib.MsgOptionText(fmt.Sprintf("New lead for %s: %s", dealer.Name, lead.CustomerName), false),
		slacklib.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("notify.SlackNotifier.NotifyLead: %w", err)
	}

	return nil
}

// BuildLeadBlocks builds Slack Block Kit blocks for a new-lead notification.
func BuildLeadBlocks(dealer *domain.Dealer, lead *domain.Lead) []slacklib.Block {
	text := fmt.Sprintf("*New lead* at *%s*\n*From:* %s", dealer.Name, lead.CustomerName)
	if lead.Phone != "" {
		text += fmt.Sprintf("\n*Phone:* %s", lead.Phone)
	}
	if lead.Email != "" {
		text += fmt.Sprintf("\n*Email:* %s", lead.Email)
	}
	if lead.VehicleID != nil {
		text += fmt.Sprintf("\n*Vehicle:* `%s`", lead.VehicleID)
	}

	section := slacklib.NewSectionBlock(
		slacklib.NewTextBlockObject(slacklib.MarkdownType, text, false, false),
		nil,
		nil,
	)

	blocks := []slacklib.Block{section}

	if lead.Message != "" {
		quote := slacklib.NewSectionBlock(
			slacklib.NewTextBlockObject(slacklib.MarkdownType, "> "+lead.Message, false, false),
			nil,
			nil,
		)
		blocks = append(blocks, quote)
	}

	return blocks
}

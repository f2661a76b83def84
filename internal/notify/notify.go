package notify

import (
	"context"

	"github.com/lotwise/dealerd/internal/domain"
)

// LeadNotifier pushes a heads-up to the sales floor when a new inquiry
// arrives. Delivery is best-effort; callers log failures and move on.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, dealer *domain.Dealer, lead *domain.Lead) error
}

// NopNotifier is used when no Slack workspace is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyLead(context.Context, *domain.Dealer, *domain.Lead) error {
	return nil
}

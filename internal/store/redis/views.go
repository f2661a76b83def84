package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Cached-view keys. External dashboards cache rendered inventory and sales
// views under these keys; recording or deleting stock drops them so the next
// render sees fresh rows.
func inventoryViewKey(dealerID uuid.UUID) string {
	return "views:inventory:" + dealerID.String()
}

func salesViewKey(dealerID uuid.UUID) string {
	return "views:sales:" + dealerID.String()
}

func (c *Client) InvalidateDealerViews(ctx context.Context, dealerID uuid.UUID) error {
	err := c.rdb.Del(ctx, inventoryViewKey(dealerID), salesViewKey(dealerID)).Err()
	if err != nil {
		return fmt.Errorf("redis.Client.InvalidateDealerViews: %w", err)
	}
	return nil
}

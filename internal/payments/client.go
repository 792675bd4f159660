package payments

import (
	"context"
	"net/url"

	"github.com/angelmondragon/storehub-console/internal/api"
	"github.com/angelmondragon/storehub-console/internal/notify"
)

const resource = "payments"

type core interface {
	Get(ctx context.Context, resource, path string, query url.Values, out any) error
}

// Client wraps the payments endpoints. Payment processing itself lives with
// the provider; this only reads order state.
type Client struct {
	core core
}

func NewClient(c *api.Client) *Client {
	return &Client{core: c}
}

// UnpaidOrders lists the orders still awaiting payment, optionally scoped
// to one customer.
func (c *Client) UnpaidOrders(ctx context.Context, customerID string) ([]notify.UnpaidOrder, error) {
	var query url.Values
	if customerID != "" {
		query = url.Values{"customer_id": {customerID}}
	}
	var orders []notify.UnpaidOrder
	if err := c.core.Get(ctx, resource, "/payments/unpaid-orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

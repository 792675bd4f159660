package rankings

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storehub-console/internal/api"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
)

const resource = "rankings"

// Tier is one rung of the loyalty ladder.
type Tier struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	MinPoints int64           `json:"min_points"`
	Discount  decimal.Decimal `json:"discount,omitempty"`
}

// CustomerRanking is a customer's current standing.
type CustomerRanking struct {
	CustomerID string `json:"customer_id"`
	TierID     string `json:"tier_id"`
	TierName   string `json:"tier_name,omitempty"`
	Points     int64  `json:"points"`
}

// HistoryEntry is one points movement.
type HistoryEntry struct {
	OrderID   string    `json:"order_id,omitempty"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryParams paginates a customer's points history.
type HistoryParams struct {
	Page  int
	Limit int
}

type core interface {
	Get(ctx context.Context, resource, path string, query url.Values, out any) error
}

// Client wraps the ranking endpoints.
type Client struct {
	core core
}

func NewClient(c *api.Client) *Client {
	return &Client{core: c}
}

// Overview returns every tier of the ladder.
func (c *Client) Overview(ctx context.Context) ([]Tier, error) {
	var tiers []Tier
	if err := c.core.Get(ctx, resource, "/rankings", nil, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// Customer returns one customer's standing.
func (c *Client) Customer(ctx context.Context, customerID string) (*CustomerRanking, error) {
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	var ranking CustomerRanking
	if err := c.core.Get(ctx, resource, "/customer-rankings/"+url.PathEscape(customerID), nil, &ranking); err != nil {
		return nil, err
	}
	return &ranking, nil
}

// CustomerHistory returns a customer's points movements.
func (c *Client) CustomerHistory(ctx context.Context, customerID string, params HistoryParams) ([]HistoryEntry, error) {
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	var entries []HistoryEntry
	if err := c.core.Get(ctx, resource, "/customer-rankings/"+url.PathEscape(customerID)+"/history", query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

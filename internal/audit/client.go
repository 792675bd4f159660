package audit

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/angelmondragon/storehub-console/internal/api"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
)

const resource = "audit"

type core interface {
	Get(ctx context.Context, resource, path string, query url.Values, out any) error
	Post(ctx context.Context, resource, path string, body, out any) error
	Stream(ctx context.Context, resource, path string, query url.Values, w io.Writer) error
}

// Client wraps the audit-trail endpoints.
type Client struct {
	core core
}

func NewClient(c *api.Client) *Client {
	return &Client{core: c}
}

func (c *Client) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var result ListResult
	if err := c.core.Get(ctx, resource, "/audit-trail", queryFrom(params), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Entry, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id required")
	}
	var entry Entry
	if err := c.core.Get(ctx, resource, "/audit-trail/"+url.PathEscape(id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Record appends an audit event.
func (c *Client) Record(ctx context.Context, input RecordInput) (*Entry, error) {
	if err := api.ValidateInput(input); err != nil {
		return nil, err
	}
	var entry Entry
	if err := c.core.Post(ctx, resource, "/audit-trail", input, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Export streams the trail, filtered by params, as a file to w.
func (c *Client) Export(ctx context.Context, w io.Writer, params ListParams) error {
	return c.core.Stream(ctx, resource, "/audit-trail/export", queryFrom(params), w)
}

func queryFrom(params ListParams) url.Values {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Action != "" {
		query.Set("action", params.Action)
	}
	if params.ActorID != "" {
		query.Set("actor_id", params.ActorID)
	}
	if params.Resource != "" {
		query.Set("resource", params.Resource)
	}
	if params.From != nil {
		query.Set("from", params.From.UTC().Format(time.RFC3339))
	}
	if params.To != nil {
		query.Set("to", params.To.UTC().Format(time.RFC3339))
	}
	return query
}

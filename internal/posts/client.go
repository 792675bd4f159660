package posts

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/angelmondragon/storehub-console/internal/api"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
)

const resource = "posts"

// Post is one editorial entry.
type Post struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug,omitempty"`
	Content      string     `json:"content"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Published    bool       `json:"published"`
	AuthorID     string     `json:"author_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ListParams filters and paginates posts.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Published *bool
}

// ListResult is one page of posts.
type ListResult struct {
	Items []Post `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// CreatePostInput is the payload for a new post.
type CreatePostInput struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Published    bool   `json:"published"`
}

// UpdatePostInput carries the mutable post fields.
type UpdatePostInput struct {
	Title        string `json:"title,omitempty"`
	Content      string `json:"content,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Published    *bool  `json:"published,omitempty"`
}

type core interface {
	Get(ctx context.Context, resource, path string, query url.Values, out any) error
	Post(ctx context.Context, resource, path string, body, out any) error
	Put(ctx context.Context, resource, path string, body, out any) error
	Delete(ctx context.Context, resource, path string, out any) error
}

// Client wraps the posts endpoints.
type Client struct {
	core core
}

func NewClient(c *api.Client) *Client {
	return &Client{core: c}
}

func (c *Client) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Published != nil {
		query.Set("published", strconv.FormatBool(*params.Published))
	}
	var result ListResult
	if err := c.core.Get(ctx, resource, "/posts", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id required")
	}
	var post Post
	if err := c.core.Get(ctx, resource, "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Create(ctx context.Context, input CreatePostInput) (*Post, error) {
	if err := api.ValidateInput(input); err != nil {
		return nil, err
	}
	var post Post
	if err := c.core.Post(ctx, resource, "/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Update(ctx context.Context, id string, input UpdatePostInput) (*Post, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id required")
	}
	if err := api.ValidateInput(input); err != nil {
		return nil, err
	}
	var post Post
	if err := c.core.Put(ctx, resource, "/posts/"+url.PathEscape(id), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "post id required")
	}
	return c.core.Delete(ctx, resource, "/posts/"+url.PathEscape(id), nil)
}

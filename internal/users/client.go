package users

import (
	"context"
	"net/url"
	"strconv"

	"github.com/angelmondragon/storehub-console/internal/api"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
)

const resource = "users"

type core interface {
	Get(ctx context.Context, resource, path string, query url.Values, out any) error
	Post(ctx context.Context, resource, path string, body, out any) error
	Put(ctx context.Context, resource, path string, body, out any) error
	Delete(ctx context.Context, resource, path string, out any) error
}

// Client wraps the user-management endpoints. One HTTP call per method,
// failures surface as typed errors for the caller to display.
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
	if params.RoleID != "" {
		query.Set("role_id", params.RoleID)
	}
	if params.Active != nil {
		query.Set("is_active", strconv.FormatBool(*params.Active))
	}

	var result ListResult
	if err := c.core.Get(ctx, resource, "/user-management", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Get(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	var user User
	if err := c.core.Get(ctx, resource, "/user-management/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	if err := api.ValidateInput(input); err != nil {
		return nil, err
	}
	var user User
	if err := c.core.Post(ctx, resource, "/user-management", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Update(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := api.ValidateInput(input); err != nil {
		return nil, err
	}
	var user User
	if err := c.core.Put(ctx, resource, "/user-management/"+url.PathEscape(id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	return c.core.Delete(ctx, resource, "/user-management/"+url.PathEscape(id), nil)
}

// ChangeRole reassigns the account's admin role.
func (c *Client) ChangeRole(ctx context.Context, id, roleID string) (*User, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if roleID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role id required")
	}
	body := map[string]string{"role_id": roleID}
	var user User
	if err := c.core.Put(ctx, resource, "/user-management/"+url.PathEscape(id)+"/role", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Roles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.core.Get(ctx, resource, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ChangePassword updates the current customer account's password.
func (c *Client) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if err := api.ValidateInput(input); err != nil {
		return err
	}
	return c.core.Post(ctx, resource, "/user-customers/change-password", input, nil)
}

package users

import "time"

// User is the account shape returned by the user-management endpoints.
type User struct {
	ID         string     `json:"_id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone,omitempty"`
	RoleID     string     `json:"role_id,omitempty"`
	CustomerID string     `json:"customer_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Role is an assignable admin role.
type Role struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListParams filters and paginates the account listing.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	RoleID string
	Active *bool
}

// ListResult is one page of accounts.
type ListResult struct {
	Items []User `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// CreateUserInput is the payload for a new account.
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"role_id,omitempty"`
}

// UpdateUserInput carries the mutable account fields; zero values are
// omitted from the request.
type UpdateUserInput struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ChangePasswordInput is the payload for the customer password endpoint.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

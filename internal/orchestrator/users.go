package orchestrator

import (
	"context"
	"net/http"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is an operator account as returned by the orchestrator.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User
	Token string `json:"token"`
}

type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type PasswordUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, in Credentials) (AuthResponse, error) {
	return c.authenticate(ctx, "/users/login", in)
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, in Registration) (AuthResponse, error) {
	return c.authenticate(ctx, "/users/register", in)
}

func (c *Client) authenticate(ctx context.Context, path string, in any) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return AuthResponse{}, err
	}
	if out.Token != "" && c.tokens != nil {
		if err := c.tokens.Save(ctx, out.Token); err != nil {
			return AuthResponse{}, err
		}
	}
	return out, nil
}

// Logout forgets the stored token. The orchestrator has no logout endpoint.
func (c *Client) Logout(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}
	return c.tokens.Clear(ctx)
}

func (c *Client) Profile(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/users/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/users/profile", in, &out)
	return out, err
}

func (c *Client) UpdatePassword(ctx context.Context, in PasswordUpdate) error {
	return c.do(ctx, http.MethodPut, "/users/password", in, nil)
}

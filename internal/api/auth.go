package api

import (
	"context"
	"net/http"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

// Login exchanges credentials for a token. The username field also accepts
// an email address.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*dms.AuthResult, error) {
	var res dms.AuthResult
	err := c.doJSON(ctx, request{
		op:       "Login",
		fallback: "Login failed",
		method:   http.MethodPost,
		path:     "/api/auth/login",
	}, creds, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, reg model.Registration) (*dms.AuthResult, error) {
	var res dms.AuthResult
	err := c.doJSON(ctx, request{
		op:       "Register",
		fallback: "Registration failed",
		method:   http.MethodPost,
		path:     "/api/auth/register",
	}, reg, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile returns the user the token belongs to.
func (c *Client) Profile(ctx context.Context, token string) (*model.User, error) {
	var res struct {
		User model.User `json:"user"`
	}
	err := c.doJSON(ctx, request{
		op:       "Profile",
		fallback: "Failed to load profile",
		method:   http.MethodGet,
		path:     "/api/auth/profile",
		token:    token,
	}, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res.User, nil
}

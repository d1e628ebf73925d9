package api

import (
	"context"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	const op = "login"
	if creds.Email == "" || creds.Password == "" {
		return model.AuthResponse{}, validationError(op, "email and password are required")
	}

	var resp model.AuthResponse
	if err := c.post(ctx, op, "/auth/login", creds, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Register creates an account and returns its access token.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	const op = "register"
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return model.AuthResponse{}, validationError(op, "email, password and name are required")
	}

	var resp model.AuthResponse
	if err := c.post(ctx, op, "/auth/register", reg, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Profile returns the user owning the current token.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.get(ctx, "profile", "/auth/profile", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Verify asks the backend whether the current token is still valid.
func (c *Client) Verify(ctx context.Context) (model.Verification, error) {
	var v model.Verification
	if err := c.get(ctx, "verify", "/auth/verify", nil, &v); err != nil {
		return model.Verification{}, err
	}
	return v, nil
}

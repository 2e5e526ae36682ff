package api

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a bearer token. The token endpoint is the
// one call the backend expects form-encoded instead of JSON.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out TokenResponse
	err := c.do(ctx, "/auth/token", requestOptions{
		method:   http.MethodPost,
		formBody: form,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "/auth/register", requestOptions{
		method:   http.MethodPost,
		jsonBody: req,
	}, nil)
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	err := c.do(ctx, "/auth/me", requestOptions{needsAuth: true}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

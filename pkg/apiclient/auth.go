package apiclient

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	body, err := jsonBody(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return AuthResponse{}, err
	}

	var resp AuthResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   body,
	}, &resp); err != nil {
		return AuthResponse{}, err
	}

	return resp, nil
}

// Register creates a new account. A successful registration behaves like a
// login: the response carries a token and the new user record.
func (c *Client) Register(ctx context.Context, input RegisterInput) (AuthResponse, error) {
	body, err := jsonBody(input)
	if err != nil {
		return AuthResponse{}, err
	}

	var resp AuthResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   body,
	}, &resp); err != nil {
		return AuthResponse{}, err
	}

	return resp, nil
}

// Me fetches the user record for the current bearer token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, request{
		method:        http.MethodGet,
		path:          "/users/me",
		authenticated: true,
	}, &user); err != nil {
		return User{}, err
	}

	return user, nil
}

// MeWithToken fetches the user record for an explicit token. Used during
// session restore, when the stored token has not been promoted to the
// current session yet; a 401 here is handled locally by the caller, so the
// unauthorized hook is not fired.
func (c *Client) MeWithToken(ctx context.Context, token string) (User, error) {
	var user User
	if err := c.do(ctx, request{
		method:               http.MethodGet,
		path:                 "/users/me",
		token:                token,
		authenticated:        true,
		skipUnauthorizedHook: true,
	}, &user); err != nil {
		return User{}, err
	}

	return user, nil
}

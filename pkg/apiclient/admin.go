package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers returns every registered user. Admin only server-side.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, request{
		method:        http.MethodGet,
		path:          "/admin",
		authenticated: true,
	}, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUserRole changes a user's role and returns the updated record.
func (c *Client) UpdateUserRole(ctx context.Context, userID, role string) (User, error) {
	body, err := jsonBody(map[string]string{"role": role})
	if err != nil {
		return User{}, err
	}

	var user User
	if err := c.do(ctx, request{
		method:        http.MethodPut,
		path:          "/admin/" + url.PathEscape(userID) + "/role",
		body:          body,
		authenticated: true,
	}, &user); err != nil {
		return User{}, err
	}

	return user, nil
}

// DeleteMaterial removes a published material.
func (c *Client) DeleteMaterial(ctx context.Context, materialID string) error {
	return c.do(ctx, request{
		method:        http.MethodDelete,
		path:          "/admin/material/" + url.PathEscape(materialID),
		authenticated: true,
	}, nil)
}

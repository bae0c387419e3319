package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Login exchanges credentials for a bearer token.
// POST /auth/login {username,password} -> {token}
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	data, err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, body)
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.Token == "" {
		return "", &Error{kind: ErrServer, Body: trimForLog(data)}
	}
	return resp.Token, nil
}

// Register creates a new account. The success body is a plain-text
// confirmation message.
// POST /auth/register {username,email,password} -> text
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.text(ctx, http.MethodPost, "/auth/register", "", nil, body)
}

package client

import (
	"context"
	"net/http"
	"net/url"

	"pomodoroclock/backend/internal/model"
)

type tokenBody struct {
	Token string `json:"token"`
}

type userBody struct {
	User model.User `json:"user"`
}

type usersBody struct {
	Users []model.User `json:"users"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var out tokenBody
	if err := c.do(ctx, http.MethodPost, "/auth/token", "", nil, creds, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register signs up a user and returns its token.
func (c *Client) Register(ctx context.Context, input RegisterInput) (string, error) {
	var out tokenBody
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, input, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// CreateUser adds a user as an admin and returns it with its token.
func (c *Client) CreateUser(ctx context.Context, token string, input CreateUserInput) (*model.User, string, error) {
	var out struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/users", token, nil, input, &out); err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

func (c *Client) GetUser(ctx context.Context, token, username string) (*model.User, error) {
	var out userBody
	if err := c.do(ctx, http.MethodGet, "/users/"+escape(username), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) GetUsers(ctx context.Context, token string) ([]model.User, error) {
	return c.FindUsers(ctx, token, "")
}

// FindUsers searches usernames and names for nameLike.
func (c *Client) FindUsers(ctx context.Context, token, nameLike string) ([]model.User, error) {
	var query url.Values
	if nameLike != "" {
		query = url.Values{"nameLike": {nameLike}}
	}
	var out usersBody
	if err := c.do(ctx, http.MethodGet, "/users", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, username string, update UserUpdate) (*model.User, error) {
	var out userBody
	if err := c.do(ctx, http.MethodPatch, "/users/"+escape(username), token, nil, update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) IncrementPomodoros(ctx context.Context, token, username string) (*model.User, error) {
	var out userBody
	if err := c.do(ctx, http.MethodPatch, "/users/"+escape(username)+"/increment", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, username string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+escape(username), token, nil, nil, nil)
}

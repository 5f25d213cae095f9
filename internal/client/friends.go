package client

import (
	"context"
	"net/http"

	"pomodoroclock/backend/internal/model"
)

func friendsPath(username string) string {
	return "/users/" + escape(username) + "/friends"
}

func requestPath(username, other string) string {
	return friendsPath(username) + "/request/" + escape(other)
}

type profilesBody struct {
	Friends        []model.FriendProfile `json:"friends"`
	FriendRequests []model.FriendProfile `json:"friendRequests"`
}

func (c *Client) GetFriends(ctx context.Context, token, username string) ([]model.FriendProfile, error) {
	var out profilesBody
	if err := c.do(ctx, http.MethodGet, friendsPath(username), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

// GetFriendRequests lists pending requests received by username.
func (c *Client) GetFriendRequests(ctx context.Context, token, username string) ([]model.FriendProfile, error) {
	var out profilesBody
	if err := c.do(ctx, http.MethodGet, friendsPath(username)+"/received", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.FriendRequests, nil
}

// GetSentRequests lists pending requests username has sent.
func (c *Client) GetSentRequests(ctx context.Context, token, username string) ([]model.FriendProfile, error) {
	var out profilesBody
	if err := c.do(ctx, http.MethodGet, friendsPath(username)+"/sent", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.FriendRequests, nil
}

func (c *Client) RequestFriend(ctx context.Context, token, username, receiver string) (*model.FriendRequest, error) {
	var out struct {
		FriendRequest model.FriendRequest `json:"friendRequest"`
	}
	if err := c.do(ctx, http.MethodPost, requestPath(username, receiver), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.FriendRequest, nil
}

// ApproveRequest accepts the request sender sent to username.
func (c *Client) ApproveRequest(ctx context.Context, token, username, sender string) (*model.FriendProfile, error) {
	var out struct {
		FriendRequest model.FriendProfile `json:"friendRequest"`
	}
	if err := c.do(ctx, http.MethodPatch, requestPath(username, sender), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.FriendRequest, nil
}

// DenyRequest deletes the request sender sent to username.
func (c *Client) DenyRequest(ctx context.Context, token, username, sender string) error {
	return c.do(ctx, http.MethodDelete, requestPath(username, sender), token, nil, nil, nil)
}

// GetFriend finds the edge between username and other in either direction,
// trying username→other first.
func (c *Client) GetFriend(ctx context.Context, token, username, other string) (*model.FriendRequest, error) {
	var out struct {
		FriendRequest model.FriendRequest `json:"friendRequest"`
	}
	err := c.do(ctx, http.MethodGet, requestPath(username, other), token, nil, nil, &out)
	if err == nil {
		return &out.FriendRequest, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	if err := c.do(ctx, http.MethodGet, requestPath(other, username), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.FriendRequest, nil
}

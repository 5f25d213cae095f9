package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"pomodoroclock/backend/internal/model"
)

type listBody struct {
	List model.List `json:"list"`
}

type taskBody struct {
	Task model.Task `json:"task"`
}

func listPath(id int) string {
	return fmt.Sprintf("/lists/%d", id)
}

func tasksPath(listID int) string {
	return listPath(listID) + "/tasks"
}

func taskPath(listID, taskID int) string {
	return fmt.Sprintf("%s/%d", tasksPath(listID), taskID)
}

func (c *Client) CreateList(ctx context.Context, token string, input ListInput) (*model.List, error) {
	var out listBody
	if err := c.do(ctx, http.MethodPost, "/lists", token, nil, input, &out); err != nil {
		return nil, err
	}
	return &out.List, nil
}

func (c *Client) GetLists(ctx context.Context, token string) ([]model.List, error) {
	return c.FindLists(ctx, token, "")
}

// FindLists returns the lists whose title contains nameLike.
func (c *Client) FindLists(ctx context.Context, token, nameLike string) ([]model.List, error) {
	var query url.Values
	if nameLike != "" {
		query = url.Values{"nameLike": {nameLike}}
	}
	var out struct {
		Lists []model.List `json:"lists"`
	}
	if err := c.do(ctx, http.MethodGet, "/lists", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

// GetList returns a list with its tasks.
func (c *Client) GetList(ctx context.Context, token string, id int) (*model.ListDetail, error) {
	var out struct {
		List model.ListDetail `json:"list"`
	}
	if err := c.do(ctx, http.MethodGet, listPath(id), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.List, nil
}

func (c *Client) UpdateList(ctx context.Context, token string, id int, update ListUpdate) (*model.List, error) {
	var out listBody
	if err := c.do(ctx, http.MethodPatch, listPath(id), token, nil, update, &out); err != nil {
		return nil, err
	}
	return &out.List, nil
}

func (c *Client) DeleteList(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, listPath(id), token, nil, nil, nil)
}

func (c *Client) CreateTask(ctx context.Context, token string, listID int, input TaskInput) (*model.Task, error) {
	var out taskBody
	if err := c.do(ctx, http.MethodPost, tasksPath(listID), token, nil, input, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) GetTasksForList(ctx context.Context, token string, listID int) ([]model.Task, error) {
	var out struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, tasksPath(listID), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, token string, listID, taskID int) (*model.Task, error) {
	var out taskBody
	if err := c.do(ctx, http.MethodGet, taskPath(listID, taskID), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, token string, listID, taskID int, update TaskUpdate) (*model.Task, error) {
	var out taskBody
	if err := c.do(ctx, http.MethodPatch, taskPath(listID, taskID), token, nil, update, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

// IncrementTask adds one completed cycle to the task.
func (c *Client) IncrementTask(ctx context.Context, token string, listID, taskID int) (*model.Task, error) {
	var out taskBody
	if err := c.do(ctx, http.MethodPatch, taskPath(listID, taskID)+"/increment", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, token string, listID, taskID int) error {
	return c.do(ctx, http.MethodDelete, taskPath(listID, taskID), token, nil, nil, nil)
}

// RemoveTasks deletes the given tasks in one call and returns how many went.
func (c *Client) RemoveTasks(ctx context.Context, token string, listID int, ids []int) (int64, error) {
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	body := struct {
		IDs []int `json:"ids"`
	}{IDs: ids}
	if err := c.do(ctx, http.MethodDelete, tasksPath(listID)+"/remove", token, nil, body, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

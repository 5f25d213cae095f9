package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/repository"
	"pomodoroclock/backend/internal/sqlpart"
)

type ListService struct {
	lists *repository.ListRepository
	tasks *repository.TaskRepository
	now   func() time.Time
}

func NewListService(lists *repository.ListRepository, tasks *repository.TaskRepository) *ListService {
	return &ListService{
		lists: lists,
		tasks: tasks,
		now:   time.Now,
	}
}

func (s *ListService) Add(ctx context.Context, input model.NewList) (*model.List, *apperrors.APIError) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperrors.BadRequest("No username")
	}

	fields := sqlpart.Fields{}
	if input.Title != nil {
		fields = fields.Add("title", *input.Title)
	}
	if input.ListType != nil {
		fields = fields.Add("listType", *input.ListType)
	}
	if input.ExpiresAt != nil {
		fields = fields.Add("expiresAt", input.ExpiresAt.UTC())
	}

	list, err := s.lists.Create(ctx, username, fields)
	if errors.Is(err, sqlpart.ErrNoData) {
		return nil, apperrors.BadRequest(err.Error())
	}
	if errors.Is(err, repository.ErrForeignKey) {
		return nil, noUser(username)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create list")
	}
	return list, nil
}

// Get returns the list with its tasks nested.
func (s *ListService) Get(ctx context.Context, id int) (*model.ListDetail, *apperrors.APIError) {
	list, apiErr := s.find(ctx, id)
	if apiErr != nil {
		return nil, apiErr
	}

	tasks, err := s.tasks.FindByList(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get list tasks")
	}
	return &model.ListDetail{List: *list, Tasks: tasks}, nil
}

func (s *ListService) FindAll(ctx context.Context, nameLike string) ([]model.List, *apperrors.APIError) {
	lists, err := s.lists.FindAll(ctx, strings.TrimSpace(nameLike))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list lists")
	}
	return lists, nil
}

func (s *ListService) Update(ctx context.Context, id int, patch model.ListPatch) (*model.List, *apperrors.APIError) {
	fields := sqlpart.Fields{}
	if patch.Title != nil {
		fields = fields.Add("title", *patch.Title)
	}
	if patch.ListType != nil {
		fields = fields.Add("listType", *patch.ListType)
	}
	if patch.ExpiresAt != nil {
		fields = fields.Add("expiresAt", patch.ExpiresAt.UTC())
	}

	list, err := s.lists.Update(ctx, id, fields)
	if errors.Is(err, sqlpart.ErrNoData) {
		return nil, apperrors.BadRequest(err.Error())
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noList(id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update list")
	}
	return list, nil
}

func (s *ListService) Remove(ctx context.Context, id int) *apperrors.APIError {
	err := s.lists.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return noList(id)
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to remove list")
	}
	return nil
}

// RemoveExpired deletes list when its expiry has passed and reports whether
// it did. A list that has not expired yet is left alone.
func (s *ListService) RemoveExpired(ctx context.Context, list model.List) (bool, *apperrors.APIError) {
	if list.ID == 0 {
		return false, apperrors.BadRequest("No id")
	}
	if list.ExpiresAt == nil {
		return false, apperrors.BadRequest("No expiresAt property")
	}
	if !list.Expired(s.now()) {
		return false, nil
	}

	err := s.lists.Delete(ctx, list.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "failed to remove expired list")
	}
	return true, nil
}

// SweepExpired runs RemoveExpired over every list carrying an expiry and
// returns how many were removed.
func (s *ListService) SweepExpired(ctx context.Context) (int, *apperrors.APIError) {
	lists, apiErr := s.FindAll(ctx, "")
	if apiErr != nil {
		return 0, apiErr
	}

	removed := 0
	for _, list := range lists {
		if list.ExpiresAt == nil {
			continue
		}
		ok, apiErr := s.RemoveExpired(ctx, list)
		if apiErr != nil {
			return removed, apiErr
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// Owner returns the username owning list id.
func (s *ListService) Owner(ctx context.Context, id int) (string, *apperrors.APIError) {
	list, apiErr := s.find(ctx, id)
	if apiErr != nil {
		return "", apiErr
	}
	return list.Username, nil
}

func (s *ListService) find(ctx context.Context, id int) (*model.List, *apperrors.APIError) {
	list, err := s.lists.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noList(id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get list")
	}
	return list, nil
}

func noList(id int) *apperrors.APIError {
	return apperrors.NotFound(fmt.Sprintf("No list: %d", id))
}

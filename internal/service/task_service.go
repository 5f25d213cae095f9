package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/repository"
	"pomodoroclock/backend/internal/sqlpart"
)

type TaskService struct {
	tasks *repository.TaskRepository
	lists *repository.ListRepository
}

func NewTaskService(tasks *repository.TaskRepository, lists *repository.ListRepository) *TaskService {
	return &TaskService{tasks: tasks, lists: lists}
}

func (s *TaskService) Add(ctx context.Context, listID int, input model.NewTask) (*model.Task, *apperrors.APIError) {
	fields := sqlpart.Fields{}
	if input.Title != nil {
		fields = fields.Add("title", *input.Title)
	}
	if input.ExpectedPomodoros != nil {
		fields = fields.Add("expectedPomodoros", *input.ExpectedPomodoros)
	}
	if input.CompletedCycles != nil {
		fields = fields.Add("completedCycles", *input.CompletedCycles)
	}
	if input.CompletedStatus != nil {
		fields = fields.Add("completedStatus", *input.CompletedStatus)
	}

	task, err := s.tasks.Create(ctx, listID, fields)
	if errors.Is(err, sqlpart.ErrNoData) {
		return nil, apperrors.BadRequest(err.Error())
	}
	if errors.Is(err, repository.ErrForeignKey) {
		return nil, noList(listID)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create task")
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id int) (*model.Task, *apperrors.APIError) {
	task, err := s.tasks.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noTask(id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get task")
	}
	return task, nil
}

// GetByList returns the tasks of listID ordered by id. A missing list is
// NotFound; a list without tasks yields an empty slice.
func (s *TaskService) GetByList(ctx context.Context, listID int) ([]model.Task, *apperrors.APIError) {
	if _, err := s.lists.Get(ctx, listID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, noList(listID)
		}
		return nil, apperrors.Wrap(err, "failed to get list")
	}

	tasks, err := s.tasks.FindByList(ctx, listID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get tasks")
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id int, patch model.TaskPatch) (*model.Task, *apperrors.APIError) {
	fields := sqlpart.Fields{}
	if patch.Title != nil {
		fields = fields.Add("title", *patch.Title)
	}
	if patch.ListID != nil {
		fields = fields.Add("listId", *patch.ListID)
	}
	if patch.ExpectedPomodoros != nil {
		fields = fields.Add("expectedPomodoros", *patch.ExpectedPomodoros)
	}
	if patch.CompletedCycles != nil {
		fields = fields.Add("completedCycles", *patch.CompletedCycles)
	}
	if patch.CompletedStatus != nil {
		fields = fields.Add("completedStatus", *patch.CompletedStatus)
	}

	task, err := s.tasks.Update(ctx, id, fields)
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, sqlpart.ErrNoData):
		return nil, apperrors.BadRequest(err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return nil, noTask(id)
	case errors.Is(err, repository.ErrForeignKey) && patch.ListID != nil:
		return nil, noList(*patch.ListID)
	default:
		return nil, apperrors.Wrap(err, "failed to update task")
	}
}

func (s *TaskService) IncrementCycles(ctx context.Context, id int) (*model.Task, *apperrors.APIError) {
	task, err := s.tasks.IncrementCycles(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noTask(id)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to increment cycles")
	}
	return task, nil
}

func (s *TaskService) Remove(ctx context.Context, id int) *apperrors.APIError {
	err := s.tasks.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return noTask(id)
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to remove task")
	}
	return nil
}

// RemoveGroup deletes every task in ids with a single statement and returns
// the number removed.
func (s *TaskService) RemoveGroup(ctx context.Context, ids []int) (int64, *apperrors.APIError) {
	if len(ids) == 0 {
		return 0, apperrors.BadRequest("No ids provided")
	}

	removed, err := s.tasks.DeleteGroup(ctx, ids)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to remove tasks")
	}
	if removed == 0 {
		return 0, apperrors.NotFound("No tasks found for provided ids")
	}
	return removed, nil
}

func noTask(id int) *apperrors.APIError {
	return apperrors.NotFound(fmt.Sprintf("No task: %d", id))
}

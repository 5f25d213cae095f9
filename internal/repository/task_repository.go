package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/sqlpart"
)

const taskColumns = `id, title, list_id, expected_pomodoros, completed_cycles, completed_status`

var TaskFieldColumns = map[string]string{
	"listId":            "list_id",
	"expectedPomodoros": "expected_pomodoros",
	"completedCycles":   "completed_cycles",
	"completedStatus":   "completed_status",
}

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, listID int, fields sqlpart.Fields) (*model.Task, error) {
	clause, err := sqlpart.Insert(fields, TaskFieldColumns)
	if err != nil {
		return nil, err
	}

	var task model.Task
	err = r.db.GetContext(
		ctx,
		&task,
		`INSERT INTO tasks (`+clause.Columns+`, "list_id")
		 VALUES (`+clause.Placeholders+`, `+clause.Next()+`)
		 RETURNING `+taskColumns,
		append(clause.Values, listID)...,
	)
	if err != nil {
		return nil, wrap("create task", err)
	}
	return &task, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int) (*model.Task, error) {
	var task model.Task
	err := r.db.GetContext(
		ctx,
		&task,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, wrap("get task", err)
	}
	return &task, nil
}

func (r *TaskRepository) FindByList(ctx context.Context, listID int) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.SelectContext(
		ctx,
		&tasks,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE list_id = $1
		 ORDER BY id`,
		listID,
	)
	if err != nil {
		return nil, wrap("find tasks by list", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id int, fields sqlpart.Fields) (*model.Task, error) {
	clause, err := sqlpart.Update(fields, TaskFieldColumns)
	if err != nil {
		return nil, err
	}

	var task model.Task
	err = r.db.GetContext(
		ctx,
		&task,
		`UPDATE tasks
		 SET `+clause.SetCols+`
		 WHERE id = `+clause.Next()+`
		 RETURNING `+taskColumns,
		append(clause.Values, id)...,
	)
	if err != nil {
		return nil, wrap("update task", err)
	}
	return &task, nil
}

func (r *TaskRepository) IncrementCycles(ctx context.Context, id int) (*model.Task, error) {
	var task model.Task
	err := r.db.GetContext(
		ctx,
		&task,
		`UPDATE tasks
		 SET completed_cycles = completed_cycles + 1
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id,
	)
	if err != nil {
		return nil, wrap("increment cycles", err)
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return wrap("delete task", err)
	}
	return requireAffected(result, "delete task")
}

// DeleteGroup removes every task whose id is in ids with one statement and
// returns the number of rows removed.
func (r *TaskRepository) DeleteGroup(ctx context.Context, ids []int) (int64, error) {
	stmt, args, err := sq.Delete("tasks").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete tasks: %w", err)
	}

	result, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, wrap("delete tasks", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete tasks rows affected: %w", err)
	}
	return affected, nil
}

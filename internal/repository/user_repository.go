package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/sqlpart"
)

const userColumns = `username, first_name, last_name, email, avatar, num_pomodoros, is_admin`

// UserFieldColumns maps user patch field names to column names.
var UserFieldColumns = map[string]string{
	"firstName":    "first_name",
	"lastName":     "last_name",
	"numPomodoros": "num_pomodoros",
	"isAdmin":      "is_admin",
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user model.NewUser) (*model.User, error) {
	var created model.User
	err := r.db.GetContext(
		ctx,
		&created,
		`INSERT INTO users (username, password, first_name, last_name, email, avatar, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		user.Username,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Avatar,
		user.IsAdmin,
	)
	if err != nil {
		return nil, wrap("create user", err)
	}
	return &created, nil
}

func (r *UserRepository) GetCredentials(ctx context.Context, username string) (*model.UserCredentials, error) {
	var user model.UserCredentials
	err := r.db.GetContext(
		ctx,
		&user,
		`SELECT `+userColumns+`, password
		 FROM users
		 WHERE username = $1`,
		username,
	)
	if err != nil {
		return nil, wrap("get user credentials", err)
	}
	return &user, nil
}

func (r *UserRepository) Get(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(
		ctx,
		&user,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE username = $1`,
		username,
	)
	if err != nil {
		return nil, wrap("get user", err)
	}
	return &user, nil
}

// FindAll returns users ordered by username. A non-empty nameLike filters
// case-insensitively on username, first name or last name.
func (r *UserRepository) FindAll(ctx context.Context, nameLike string) ([]model.User, error) {
	query := sq.Select(strings.Split(userColumns, ", ")...).
		From("users").
		OrderBy("username").
		PlaceholderFormat(sq.Dollar)
	if nameLike != "" {
		pattern := "%" + strings.ToLower(nameLike) + "%"
		query = query.Where(sq.Or{
			sq.Like{"LOWER(username)": pattern},
			sq.Like{"LOWER(first_name)": pattern},
			sq.Like{"LOWER(last_name)": pattern},
		})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find users: %w", err)
	}

	users := []model.User{}
	if err := r.db.SelectContext(ctx, &users, stmt, args...); err != nil {
		return nil, wrap("find users", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, username string, fields sqlpart.Fields) (*model.User, error) {
	clause, err := sqlpart.Update(fields, UserFieldColumns)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.db.GetContext(
		ctx,
		&user,
		`UPDATE users
		 SET `+clause.SetCols+`
		 WHERE username = `+clause.Next()+`
		 RETURNING `+userColumns,
		append(clause.Values, username)...,
	)
	if err != nil {
		return nil, wrap("update user", err)
	}
	return &user, nil
}

func (r *UserRepository) IncrementPomodoros(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(
		ctx,
		&user,
		`UPDATE users
		 SET num_pomodoros = num_pomodoros + 1
		 WHERE username = $1
		 RETURNING `+userColumns,
		username,
	)
	if err != nil {
		return nil, wrap("increment pomodoros", err)
	}
	return &user, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return wrap("delete user", err)
	}
	return requireAffected(result, "delete user")
}

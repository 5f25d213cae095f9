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

const listColumns = `id, title, username, list_type, created_at, expires_at`

var ListFieldColumns = map[string]string{
	"listType":  "list_type",
	"createdAt": "created_at",
	"expiresAt": "expires_at",
}

type ListRepository struct {
	db *sqlx.DB
}

func NewListRepository(db *sqlx.DB) *ListRepository {
	return &ListRepository{db: db}
}

type listRow struct {
	ID        int      `db:"id"`
	Title     string   `db:"title"`
	Username  string   `db:"username"`
	ListType  bool     `db:"list_type"`
	CreatedAt nullTime `db:"created_at"`
	ExpiresAt nullTime `db:"expires_at"`
}

func (row listRow) toModel() model.List {
	return model.List{
		ID:        row.ID,
		Title:     row.Title,
		Username:  row.Username,
		ListType:  row.ListType,
		CreatedAt: row.CreatedAt.Time,
		ExpiresAt: row.ExpiresAt.Ptr(),
	}
}

// Create inserts a list owned by username with the given optional fields.
func (r *ListRepository) Create(ctx context.Context, username string, fields sqlpart.Fields) (*model.List, error) {
	clause, err := sqlpart.Insert(fields, ListFieldColumns)
	if err != nil {
		return nil, err
	}

	var row listRow
	err = r.db.GetContext(
		ctx,
		&row,
		`INSERT INTO lists (`+clause.Columns+`, "username")
		 VALUES (`+clause.Placeholders+`, `+clause.Next()+`)
		 RETURNING `+listColumns,
		append(clause.Values, username)...,
	)
	if err != nil {
		return nil, wrap("create list", err)
	}
	list := row.toModel()
	return &list, nil
}

func (r *ListRepository) Get(ctx context.Context, id int) (*model.List, error) {
	var row listRow
	err := r.db.GetContext(
		ctx,
		&row,
		`SELECT `+listColumns+`
		 FROM lists
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, wrap("get list", err)
	}
	list := row.toModel()
	return &list, nil
}

// FindAll returns lists ordered by id, optionally filtered by a
// case-insensitive title substring.
func (r *ListRepository) FindAll(ctx context.Context, nameLike string) ([]model.List, error) {
	query := sq.Select(strings.Split(listColumns, ", ")...).
		From("lists").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)
	if nameLike != "" {
		query = query.Where(sq.Like{"LOWER(title)": "%" + strings.ToLower(nameLike) + "%"})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find lists: %w", err)
	}

	var rows []listRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, wrap("find lists", err)
	}

	lists := make([]model.List, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, row.toModel())
	}
	return lists, nil
}

func (r *ListRepository) Update(ctx context.Context, id int, fields sqlpart.Fields) (*model.List, error) {
	clause, err := sqlpart.Update(fields, ListFieldColumns)
	if err != nil {
		return nil, err
	}

	var row listRow
	err = r.db.GetContext(
		ctx,
		&row,
		`UPDATE lists
		 SET `+clause.SetCols+`
		 WHERE id = `+clause.Next()+`
		 RETURNING `+listColumns,
		append(clause.Values, id)...,
	)
	if err != nil {
		return nil, wrap("update list", err)
	}
	list := row.toModel()
	return &list, nil
}

func (r *ListRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return wrap("delete list", err)
	}
	return requireAffected(result, "delete list")
}

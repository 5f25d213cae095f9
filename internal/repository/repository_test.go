package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoroclock/backend/internal/sqlpart"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var taskRowColumns = []string{"id", "title", "list_id", "expected_pomodoros", "completed_cycles", "completed_status"}

func TestTaskIncrementCyclesIsSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`UPDATE tasks\s+SET completed_cycles = completed_cycles \+ 1\s+WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow(7, "Write report", 1, 2, 1, false))

	task, err := repo.IncrementCycles(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, task.CompletedCycles)
	assert.Equal(t, 1, task.ListID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskIncrementCyclesMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`UPDATE tasks`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	_, err := repo.IncrementCycles(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskDeleteGroupUsesOneInClause(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM tasks WHERE id IN \(\$1,\$2,\$3\)`).
		WithArgs(1, 2, 3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.DeleteGroup(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskCreateAppendsListID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`INSERT INTO tasks \("title", "expected_pomodoros", "list_id"\)\s+VALUES \(\$1, \$2, \$3\)`).
		WithArgs("Write report", 3, 5).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow(1, "Write report", 5, 3, 0, false))

	fields := sqlpart.Fields{}.Add("title", "Write report").Add("expectedPomodoros", 3)
	task, err := repo.Create(context.Background(), 5, fields)
	require.NoError(t, err)
	assert.Equal(t, 5, task.ListID)
	assert.Equal(t, 3, task.ExpectedPomodoros)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUpdateBuildsPositionalSetClause(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListRepository(db)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE lists\s+SET "title"=\$1, "list_type"=\$2\s+WHERE id = \$3`).
		WithArgs("Work", false, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "username", "list_type", "created_at", "expires_at"}).
			AddRow(4, "Work", "u1", false, created, nil))

	fields := sqlpart.Fields{}.Add("title", "Work").Add("listType", false)
	list, err := repo.Update(context.Background(), 4, fields)
	require.NoError(t, err)
	assert.Equal(t, created, list.CreatedAt)
	assert.Nil(t, list.ExpiresAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUpdateRejectsEmptyFieldsBeforeQuerying(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListRepository(db)

	_, err := repo.Update(context.Background(), 4, nil)
	assert.ErrorIs(t, err, sqlpart.ErrNoData)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFindAllScansTextTimestamps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListRepository(db)

	mock.ExpectQuery(`SELECT id, title, username, list_type, created_at, expires_at FROM lists WHERE LOWER\(title\) LIKE \$1 ORDER BY id`).
		WithArgs("%work%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "username", "list_type", "created_at", "expires_at"}).
			AddRow(1, "Work", "u1", true, "2024-03-01 09:00:00", "2024-03-02 10:30:00.5+00:00"))

	lists, err := repo.FindAll(context.Background(), "WORK")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), lists[0].CreatedAt)
	require.NotNil(t, lists[0].ExpiresAt)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 30, 0, 500000000, time.UTC), *lists[0].ExpiresAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindAllFiltersOnNames(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM users WHERE \(LOWER\(username\) LIKE \$1 OR LOWER\(first_name\) LIKE \$2 OR LOWER\(last_name\) LIKE \$3\) ORDER BY username`).
		WithArgs("%al%", "%al%", "%al%").
		WillReturnRows(sqlmock.NewRows([]string{"username", "first_name", "last_name", "email", "avatar", "num_pomodoros", "is_admin"}).
			AddRow("alice", "Alice", "A", "a@example.com", "/default-avatar.png", 3, false))

	users, err := repo.FindAll(context.Background(), "Al")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 3, users[0].NumPomodoros)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendAcceptRollsBackWhenNoEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE friends\s+SET request_status = \$1\s+WHERE sender = \$2 AND receiver = \$3`).
		WithArgs(true, "a", "b").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Accept(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendDeleteReturnsRemovedEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectQuery(`DELETE FROM friends\s+WHERE sender = \$1 AND receiver = \$2\s+RETURNING`).
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"sender", "receiver", "request_status"}).AddRow("a", "b", false))
	mock.ExpectQuery(`DELETE FROM friends`).
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"sender", "receiver", "request_status"}))

	removed, err := repo.Delete(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Receiver)

	_, err = repo.Delete(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, ErrDuplicate},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrDuplicate},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ErrForeignKey},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, ErrDuplicate},
		{"postgres foreign key", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503"}), ErrForeignKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tc.err), tc.want)
		})
	}

	other := errors.New("boom")
	assert.Equal(t, other, classify(other))
	assert.NoError(t, classify(nil))
}

func TestParseTime(t *testing.T) {
	for _, raw := range []string{
		"2024-03-01T09:00:00Z",
		"2024-03-01T09:00:00.000Z",
		"2024-03-01 09:00:00",
		"2024-03-01 09:00:00+00:00",
	} {
		parsed, err := parseTime(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), parsed, raw)
	}

	_, err := parseTime("yesterday")
	assert.Error(t, err)
}

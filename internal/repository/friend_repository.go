package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pomodoroclock/backend/internal/model"
)

type FriendRepository struct {
	db *sqlx.DB
}

func NewFriendRepository(db *sqlx.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) Create(ctx context.Context, sender, receiver string, status bool) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.GetContext(
		ctx,
		&request,
		`INSERT INTO friends (sender, receiver, request_status)
		 VALUES ($1, $2, $3)
		 RETURNING sender, receiver, request_status`,
		sender,
		receiver,
		status,
	)
	if err != nil {
		return nil, wrap("create friend request", err)
	}
	return &request, nil
}

func (r *FriendRepository) Get(ctx context.Context, sender, receiver string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.GetContext(
		ctx,
		&request,
		`SELECT sender, receiver, request_status
		 FROM friends
		 WHERE sender = $1 AND receiver = $2`,
		sender,
		receiver,
	)
	if err != nil {
		return nil, wrap("get friend request", err)
	}
	return &request, nil
}

// FindBySender returns the receivers' profiles for edges sent by sender with
// the given status.
func (r *FriendRepository) FindBySender(ctx context.Context, sender string, status bool) ([]model.FriendProfile, error) {
	profiles := []model.FriendProfile{}
	err := r.db.SelectContext(
		ctx,
		&profiles,
		`SELECT f.request_status AS request_status,
		        f.receiver AS username,
		        u.first_name AS first_name,
		        u.last_name AS last_name,
		        u.avatar AS avatar
		 FROM friends f
		 JOIN users u ON f.receiver = u.username
		 WHERE f.sender = $1 AND f.request_status = $2
		 ORDER BY f.receiver`,
		sender,
		status,
	)
	if err != nil {
		return nil, wrap("find requests by sender", err)
	}
	return profiles, nil
}

// FindByReceiver returns the senders' profiles for edges received by
// receiver with the given status.
func (r *FriendRepository) FindByReceiver(ctx context.Context, receiver string, status bool) ([]model.FriendProfile, error) {
	profiles := []model.FriendProfile{}
	err := r.db.SelectContext(
		ctx,
		&profiles,
		`SELECT f.request_status AS request_status,
		        f.sender AS username,
		        u.first_name AS first_name,
		        u.last_name AS last_name,
		        u.avatar AS avatar
		 FROM friends f
		 JOIN users u ON f.sender = u.username
		 WHERE f.receiver = $1 AND f.request_status = $2
		 ORDER BY f.sender`,
		receiver,
		status,
	)
	if err != nil {
		return nil, wrap("find requests by receiver", err)
	}
	return profiles, nil
}

// Accept marks the sender→receiver edge accepted and returns the sender's
// profile. The update and the profile read share one transaction.
func (r *FriendRepository) Accept(ctx context.Context, sender, receiver string) (*model.FriendProfile, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin accept tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(
		ctx,
		`UPDATE friends
		 SET request_status = $1
		 WHERE sender = $2 AND receiver = $3`,
		model.RequestAccepted,
		sender,
		receiver,
	)
	if err != nil {
		return nil, wrap("accept friend request", err)
	}
	if err := requireAffected(result, "accept friend request"); err != nil {
		return nil, err
	}

	var profile model.FriendProfile
	err = tx.GetContext(
		ctx,
		&profile,
		`SELECT f.request_status AS request_status,
		        f.sender AS username,
		        u.first_name AS first_name,
		        u.last_name AS last_name,
		        u.avatar AS avatar
		 FROM friends f
		 JOIN users u ON f.sender = u.username
		 WHERE f.sender = $1 AND f.receiver = $2`,
		sender,
		receiver,
	)
	if err != nil {
		return nil, wrap("read accepted request", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit accept tx: %w", err)
	}
	return &profile, nil
}

// Delete removes the sender→receiver edge and returns it as it was.
func (r *FriendRepository) Delete(ctx context.Context, sender, receiver string) (*model.FriendRequest, error) {
	var request model.FriendRequest
	err := r.db.GetContext(
		ctx,
		&request,
		`DELETE FROM friends
		 WHERE sender = $1 AND receiver = $2
		 RETURNING sender, receiver, request_status`,
		sender,
		receiver,
	)
	if err != nil {
		return nil, wrap("delete friend request", err)
	}
	return &request, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/repository"
)

type FriendService struct {
	repo *repository.FriendRepository
}

func NewFriendService(repo *repository.FriendRepository) *FriendService {
	return &FriendService{repo: repo}
}

// Request stores a directed sender→receiver edge with status. The reverse
// edge may coexist; only an exact duplicate is rejected.
func (s *FriendService) Request(ctx context.Context, sender, receiver string, status bool) (*model.FriendRequest, *apperrors.APIError) {
	if sender == "" || receiver == "" {
		return nil, apperrors.BadRequest("Needs a sender or receiver")
	}
	if sender == receiver {
		return nil, apperrors.BadRequest("Cannot send a friend request to yourself")
	}

	request, err := s.repo.Create(ctx, sender, receiver, status)
	switch {
	case err == nil:
		return request, nil
	case errors.Is(err, repository.ErrDuplicate):
		return nil, apperrors.BadRequest(fmt.Sprintf("Duplicate friend request: %s to %s", sender, receiver))
	case errors.Is(err, repository.ErrForeignKey):
		return nil, apperrors.NotFound(fmt.Sprintf("No user: %s or %s", sender, receiver))
	default:
		return nil, apperrors.Wrap(err, "failed to create friend request")
	}
}

func (s *FriendService) Get(ctx context.Context, sender, receiver string) (*model.FriendRequest, *apperrors.APIError) {
	request, err := s.repo.Get(ctx, sender, receiver)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("No friendship found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get friend request")
	}
	return request, nil
}

// FindAllRequestBySender returns the receivers of sender's edges with status.
func (s *FriendService) FindAllRequestBySender(ctx context.Context, sender string, status bool) ([]model.FriendProfile, *apperrors.APIError) {
	profiles, err := s.repo.FindBySender(ctx, sender, status)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sent requests")
	}
	return profiles, nil
}

// FindAllRequestByReceiver returns the senders of edges to receiver with status.
func (s *FriendService) FindAllRequestByReceiver(ctx context.Context, receiver string, status bool) ([]model.FriendProfile, *apperrors.APIError) {
	profiles, err := s.repo.FindByReceiver(ctx, receiver, status)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list received requests")
	}
	return profiles, nil
}

// FindAllFriends returns the accepted edges of username in both directions,
// received first.
func (s *FriendService) FindAllFriends(ctx context.Context, username string) ([]model.FriendProfile, *apperrors.APIError) {
	received, apiErr := s.FindAllRequestByReceiver(ctx, username, model.RequestAccepted)
	if apiErr != nil {
		return nil, apiErr
	}
	sent, apiErr := s.FindAllRequestBySender(ctx, username, model.RequestAccepted)
	if apiErr != nil {
		return nil, apiErr
	}
	return append(received, sent...), nil
}

func (s *FriendService) AcceptRequest(ctx context.Context, sender, receiver string) (*model.FriendProfile, *apperrors.APIError) {
	profile, err := s.repo.Accept(ctx, sender, receiver)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, requestNotFound(sender, receiver)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to accept friend request")
	}
	return profile, nil
}

// Remove deletes the sender→receiver edge at any status and returns it.
func (s *FriendService) Remove(ctx context.Context, sender, receiver string) (*model.FriendRequest, *apperrors.APIError) {
	request, err := s.repo.Delete(ctx, sender, receiver)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, requestNotFound(sender, receiver)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to remove friend request")
	}
	return request, nil
}

func requestNotFound(sender, receiver string) *apperrors.APIError {
	return apperrors.NotFound(fmt.Sprintf("%s to %s request not found", sender, receiver))
}

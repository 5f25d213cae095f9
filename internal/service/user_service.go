package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/repository"
	"pomodoroclock/backend/internal/sqlpart"
)

const invalidCredentials = "Invalid username/password"

type UserService struct {
	repo       *repository.UserRepository
	bcryptCost int
}

func NewUserService(repo *repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

// Authenticate checks username and password. An unknown user and a wrong
// password fail identically.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, *apperrors.APIError) {
	creds, err := s.repo.GetCredentials(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(creds.Password), []byte(password)) != nil {
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	user := creds.User
	return &user, nil
}

func (s *UserService) Register(ctx context.Context, input model.NewUser) (*model.User, *apperrors.APIError) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, apperrors.BadRequest("No username")
	}

	_, err := s.repo.Get(ctx, input.Username)
	if err == nil {
		return nil, duplicateUsername(input.Username)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(err, "failed to query user")
	}

	hash, apiErr := s.hash(input.Password)
	if apiErr != nil {
		return nil, apiErr
	}
	input.Password = hash
	if input.Avatar == "" {
		input.Avatar = model.DefaultAvatar
	}

	user, err := s.repo.Create(ctx, input)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, duplicateUsername(input.Username)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create user")
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, *apperrors.APIError) {
	user, err := s.repo.Get(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noUser(username)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user")
	}
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context, nameLike string) ([]model.User, *apperrors.APIError) {
	users, err := s.repo.FindAll(ctx, strings.TrimSpace(nameLike))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// Update applies the non-nil fields of patch. A new password is hashed
// before it reaches the query.
func (s *UserService) Update(ctx context.Context, username string, patch model.UserPatch) (*model.User, *apperrors.APIError) {
	fields := sqlpart.Fields{}
	if patch.Password != nil {
		hash, apiErr := s.hash(*patch.Password)
		if apiErr != nil {
			return nil, apiErr
		}
		fields = fields.Add("password", hash)
	}
	if patch.FirstName != nil {
		fields = fields.Add("firstName", *patch.FirstName)
	}
	if patch.LastName != nil {
		fields = fields.Add("lastName", *patch.LastName)
	}
	if patch.Email != nil {
		fields = fields.Add("email", *patch.Email)
	}
	if patch.Avatar != nil {
		fields = fields.Add("avatar", *patch.Avatar)
	}
	if patch.IsAdmin != nil {
		fields = fields.Add("isAdmin", *patch.IsAdmin)
	}

	user, err := s.repo.Update(ctx, username, fields)
	if errors.Is(err, sqlpart.ErrNoData) {
		return nil, apperrors.BadRequest(err.Error())
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noUser(username)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update user")
	}
	return user, nil
}

func (s *UserService) IncrementPomodoros(ctx context.Context, username string) (*model.User, *apperrors.APIError) {
	user, err := s.repo.IncrementPomodoros(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, noUser(username)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to increment pomodoros")
	}
	return user, nil
}

func (s *UserService) Remove(ctx context.Context, username string) *apperrors.APIError {
	err := s.repo.Delete(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return noUser(username)
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to remove user")
	}
	return nil
}

func (s *UserService) hash(password string) (string, *apperrors.APIError) {
	if password == "" {
		return "", apperrors.BadRequest("No password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to secure password")
	}
	return string(hash), nil
}

func noUser(username string) *apperrors.APIError {
	return apperrors.NotFound(fmt.Sprintf("No user: %s", username))
}

func duplicateUsername(username string) *apperrors.APIError {
	return apperrors.BadRequest(fmt.Sprintf("Duplicate username: %s", username))
}

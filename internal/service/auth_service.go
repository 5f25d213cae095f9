package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/model"
)

// Claims is the signed payload of an auth token.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// CanActAs reports whether the holder may act on username's resources.
func (c *Claims) CanActAs(username string) bool {
	return c != nil && (c.IsAdmin || (username != "" && c.Username == username))
}

type AuthService struct {
	users     *UserService
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users *UserService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

type TokenResult struct {
	Token string `json:"token"`
}

type UserTokenResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login authenticates the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResult, *apperrors.APIError) {
	user, apiErr := s.users.Authenticate(ctx, username, password)
	if apiErr != nil {
		return nil, apiErr
	}

	token, apiErr := s.IssueToken(*user)
	if apiErr != nil {
		return nil, apiErr
	}
	return &TokenResult{Token: token}, nil
}

// Register creates a non-admin user and issues a token for it.
func (s *AuthService) Register(ctx context.Context, input model.NewUser) (*TokenResult, *apperrors.APIError) {
	input.IsAdmin = false
	user, apiErr := s.users.Register(ctx, input)
	if apiErr != nil {
		return nil, apiErr
	}

	token, apiErr := s.IssueToken(*user)
	if apiErr != nil {
		return nil, apiErr
	}
	return &TokenResult{Token: token}, nil
}

// CreateUser registers a user that may be an admin and returns it with a
// token. Callers must already have checked admin rights.
func (s *AuthService) CreateUser(ctx context.Context, input model.NewUser) (*UserTokenResult, *apperrors.APIError) {
	user, apiErr := s.users.Register(ctx, input)
	if apiErr != nil {
		return nil, apiErr
	}

	token, apiErr := s.IssueToken(*user)
	if apiErr != nil {
		return nil, apiErr
	}
	return &UserTokenResult{User: *user, Token: token}, nil
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, *apperrors.APIError) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("invalid token")
	}

	if claims.Username == "" {
		return nil, apperrors.Unauthorized("invalid token subject")
	}

	return claims, nil
}

func (s *AuthService) IssueToken(user model.User) (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := Claims{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

package service

import (
	"context"
	"fmt"

	"wacdo/internal/auth"
	"wacdo/internal/model"
	"wacdo/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenService,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies the credentials and returns a signed token. Unknown email
// and wrong password produce the same response.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, model.ValidationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if user == nil || !s.hasher.Verify(req.Password, user.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("login failed")
		return nil, model.UnauthorizedError("incorrect email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("login succeeded")

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	}, nil
}

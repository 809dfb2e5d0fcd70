package service

import (
	"context"
	"errors"
	"fmt"

	"wacdo/internal/auth"
	"wacdo/internal/model"
	"wacdo/internal/policy"
	"wacdo/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, hasher *auth.Hasher, logger zerolog.Logger) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, caller policy.Identity, req *model.UserCreateRequest) (*model.User, error) {
	if err := policy.CanManageUsers(caller); err != nil {
		return nil, err
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, model.ValidationError("nom, email and password are required")
	}

	role := req.Role
	if role == "" {
		role = model.RoleAccueil
	}
	if !role.Valid() {
		return nil, model.ValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.ConflictError("email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *userService) List(ctx context.Context, caller policy.Identity) ([]model.User, error) {
	if err := policy.CanManageUsers(caller); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, caller policy.Identity, id int64) (*model.User, error) {
	if err := policy.CanManageUsers(caller); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *userService) Update(ctx context.Context, caller policy.Identity, id int64, req *model.UserUpdateRequest) (*model.User, error) {
	if err := policy.CanManageUsers(caller); err != nil {
		return nil, err
	}
	return s.apply(ctx, id, req)
}

func (s *userService) Delete(ctx context.Context, caller policy.Identity, id int64) error {
	if err := policy.CanManageUsers(caller); err != nil {
		return err
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.NotFoundError("user", id)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) GetProfile(ctx context.Context, caller policy.Identity) (*model.User, error) {
	return s.load(ctx, caller.UserID)
}

// UpdateProfile applies a self-update. Non-administrators may only change
// email and password; anything else in the payload is rejected before any
// write happens.
func (s *userService) UpdateProfile(ctx context.Context, caller policy.Identity, req *model.UserUpdateRequest) (*model.User, error) {
	if err := policy.ValidateSelfUpdate(caller, req); err != nil {
		return nil, err
	}
	return s.apply(ctx, caller.UserID, req)
}

func (s *userService) load(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.NotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) apply(ctx context.Context, id int64, req *model.UserUpdateRequest) (*model.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, model.ValidationError("nom cannot be empty")
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, model.ValidationError("email cannot be empty")
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, model.ValidationError(fmt.Sprintf("unknown role %q", *req.Role))
		}
		user.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.ConflictError("email already registered")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return user, nil
}

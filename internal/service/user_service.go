package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notehub/internal/access"
	apperrors "notehub/internal/errors"
	"notehub/internal/model"
	"notehub/internal/repository"
)

const bcryptCost = 10

// NewUserInput carries the fields for the privileged user-creation path.
// Password is plaintext here and hashed before anything is persisted.
type NewUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Roles     []string
}

// UserService exposes user operations.
type UserService interface {
	// CreateUser requires the caller to hold the admin role.
	CreateUser(ctx context.Context, callerRoles []string, input NewUserInput) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService with a repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(ctx context.Context, callerRoles []string, input NewUserInput) (*model.User, error) {
	if err := access.RequireRole(callerRoles, model.RoleAdmin); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	// Hashing happens here, not in a persistence hook.
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roles := model.Roles{model.RoleUser}
	for _, role := range input.Roles {
		if role != model.RoleUser {
			roles = append(roles, role)
		}
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		PasswordHash: string(hash),
		Roles:        roles,
	}
	user.StampCreate(time.Now())

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

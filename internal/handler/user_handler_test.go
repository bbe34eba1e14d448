package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notehub/internal/auth"
	apperrors "notehub/internal/errors"
	"notehub/internal/handler"
	"notehub/internal/model"
	"notehub/internal/service"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

const createUserBody = `{"firstName":"Jane","lastName":"Doe","userName":"jane","password":"secret123"}`

func TestUserHandler_CreateUserDeniedForNonAdmin(t *testing.T) {
	// Real service, mocked repository: the role gate sits in front of any
	// persistence access.
	mockRepo := new(MockUserRepository)
	h := handler.NewUserHandler(service.NewUserService(mockRepo))

	c, rec := newContext(t, http.MethodPost, "/api/user", createUserBody, "")

	require.NoError(t, h.CreateUser(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")
	mockRepo.AssertExpectations(t)
}

func TestUserHandler_CreateUserAsAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "jane").Return(nil, apperrors.ErrUserNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	h := handler.NewUserHandler(service.NewUserService(mockRepo))

	c, rec := newContext(t, http.MethodPost, "/api/user", createUserBody, "")
	c.Set("user", &jwt.Token{Claims: &auth.Claims{
		UserID:   1,
		Username: "root",
		Roles:    []string{model.RoleUser, model.RoleAdmin},
	}})

	require.NoError(t, h.CreateUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane", resp["username"])
	assert.NotContains(t, resp, "password")
	assert.NotContains(t, resp, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$") // no bcrypt hash anywhere in the body
	mockRepo.AssertExpectations(t)
}

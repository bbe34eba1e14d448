package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notehub/internal/auth"
	apperrors "notehub/internal/errors"
	"notehub/internal/handler"
	"notehub/internal/model"
	"notehub/internal/validation"
)

// MockNoteService is a mock implementation of service.NoteService.
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Get(ctx context.Context, callerID, noteID uint) (*model.Note, error) {
	args := m.Called(ctx, callerID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) List(ctx context.Context, callerID uint) ([]model.Note, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, callerID uint, title, content string) (*model.Note, error) {
	args := m.Called(ctx, callerID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, note *model.Note, title, content *string) (*model.Note, error) {
	args := m.Called(ctx, note, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

type testValidator struct {
	v *playgroundvalidator.Validate
}

func (tv testValidator) Validate(i interface{}) error { return tv.v.Struct(i) }

func newContext(t *testing.T, method, target, body string, pathParam string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = testValidator{v: validation.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if pathParam != "" {
		c.SetParamNames("id")
		c.SetParamValues(pathParam)
	}

	c.Set("user", &jwt.Token{Claims: &auth.Claims{
		UserID:   7,
		Username: "test",
		Roles:    []string{model.RoleUser},
	}})
	return c, rec
}

func TestNoteHandler_GetNoteNotOwned(t *testing.T) {
	mockService := new(MockNoteService)
	mockService.On("Get", mock.Anything, uint(7), uint(42)).Return(nil, apperrors.ErrNoteNotFound)

	h := handler.NewNoteHandler(mockService)
	c, rec := newContext(t, http.MethodGet, "/api/note/42", "", "42")

	require.NoError(t, h.GetNote(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Note not found")
	mockService.AssertExpectations(t)
}

func TestNoteHandler_CreateNoteShortTitle(t *testing.T) {
	mockService := new(MockNoteService)
	h := handler.NewNoteHandler(mockService)

	c, rec := newContext(t, http.MethodPost, "/api/note",
		`{"title":"smal","content":"a perfectly valid content"}`, "")

	require.NoError(t, h.CreateNote(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp validation.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "title", resp.Violations[0].PropertyPath)
	assert.Equal(t, "Your title must be at least 5 characters long", resp.Violations[0].Title)

	// The service is never reached on invalid input.
	mockService.AssertExpectations(t)
}

func TestNoteHandler_CreateNote(t *testing.T) {
	created := &model.Note{ID: 12, Title: "valid title", Content: "valid note content", UserID: 7}
	mockService := new(MockNoteService)
	mockService.On("Create", mock.Anything, uint(7), "valid title", "valid note content").Return(created, nil)

	h := handler.NewNoteHandler(mockService)
	c, rec := newContext(t, http.MethodPost, "/api/note",
		`{"title":"valid title","content":"valid note content"}`, "")

	require.NoError(t, h.CreateNote(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 12, resp["id"])
	assert.Equal(t, "valid title", resp["title"])
	assert.Contains(t, resp, "createdAt")
	assert.Contains(t, resp, "updatedAt")
	mockService.AssertExpectations(t)
}

func TestNoteHandler_DeleteNote(t *testing.T) {
	note := &model.Note{ID: 5, Title: "to remove", Content: "goodbye cruel world", UserID: 7}
	mockService := new(MockNoteService)
	mockService.On("Get", mock.Anything, uint(7), uint(5)).Return(note, nil)
	mockService.On("Delete", mock.Anything, note).Return(nil)

	h := handler.NewNoteHandler(mockService)
	c, rec := newContext(t, http.MethodDelete, "/api/note/5", "", "5")

	require.NoError(t, h.DeleteNote(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Note deleted"`, rec.Body.String())
	mockService.AssertExpectations(t)
}

func TestNoteHandler_DeleteNoteFault(t *testing.T) {
	note := &model.Note{ID: 5, Title: "stubborn", Content: "refuses to be deleted", UserID: 7}
	mockService := new(MockNoteService)
	mockService.On("Get", mock.Anything, uint(7), uint(5)).Return(note, nil)
	mockService.On("Delete", mock.Anything, note).Return(apperrors.ErrPersistenceFault)

	h := handler.NewNoteHandler(mockService)
	c, rec := newContext(t, http.MethodDelete, "/api/note/5", "", "5")

	require.NoError(t, h.DeleteNote(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The underlying cause stays hidden.
	assert.NotContains(t, rec.Body.String(), "delete note")
	mockService.AssertExpectations(t)
}

func TestNoteHandler_UpdateNoteMalformedID(t *testing.T) {
	mockService := new(MockNoteService)
	h := handler.NewNoteHandler(mockService)

	c, rec := newContext(t, http.MethodPut, "/api/note/abc", `{"title":"valid title"}`, "abc")

	require.NoError(t, h.UpdateNote(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockService.AssertExpectations(t)
}

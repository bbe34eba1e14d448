package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"notehub/internal/access"
	"notehub/internal/auth"
	"notehub/internal/config"
	"notehub/internal/handler"
	"notehub/internal/model"
	"notehub/internal/repository"
	"notehub/internal/router"
	"notehub/internal/service"
)

// newTestServer wires the full stack over an in-memory database, the same
// way cmd/server does against MySQL.
func newTestServer(t *testing.T, name string) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Note{}))

	cfg := &config.Config{JWTSecret: "test-secret"}

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(nil)
	resolver := access.NewResolver(noteRepo)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, jwtService, tokenStore))
	noteHandler := handler.NewNoteHandler(service.NewNoteService(resolver, noteRepo, nil))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo))

	e := echo.New()
	router.Register(e, cfg, authHandler, noteHandler, userHandler)
	return e, db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, roles model.Roles) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		FirstName:    "Seed",
		LastName:     "User",
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
	}
	user.StampCreate(time.Now())
	require.NoError(t, db.Create(user).Error)
	return user
}

func request(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := request(e, http.MethodPost, "/api/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestRouter_UnauthenticatedRequests(t *testing.T) {
	e, _ := newTestServer(t, "router_unauth")

	assert.Equal(t, http.StatusUnauthorized, request(e, http.MethodGet, "/api/note/1", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(e, http.MethodGet, "/api/notes", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(e, http.MethodPost, "/api/user", "", "{}").Code)
	assert.Equal(t, http.StatusUnauthorized,
		request(e, http.MethodGet, "/api/notes", "not-a-valid-token", "").Code)
}

func TestRouter_LoginFailure(t *testing.T) {
	e, db := newTestServer(t, "router_login")
	seedUser(t, db, "test", "password123", model.Roles{model.RoleUser})

	rec := request(e, http.MethodPost, "/api/login", "", `{"username":"test","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(e, http.MethodPost, "/api/login", "", `{"username":"ghost","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_NoteLifecycle(t *testing.T) {
	e, db := newTestServer(t, "router_lifecycle")
	seedUser(t, db, "test", "password123", model.Roles{model.RoleUser})
	seedUser(t, db, "admin", "admin-pass", model.Roles{model.RoleAdmin})

	testToken := login(t, e, "test", "password123")
	adminToken := login(t, e, "admin", "admin-pass")

	// Create two notes as "test".
	rec := request(e, http.MethodPost, "/api/note", testToken,
		`{"title":"first note","content":"content of the first note"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, first["createdAt"], first["updatedAt"])
	firstID := uint(first["id"].(float64))

	rec = request(e, http.MethodPost, "/api/note", testToken,
		`{"title":"second note","content":"content of the second note"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Listing as "test" returns exactly those two, in creation order.
	rec = request(e, http.MethodGet, "/api/notes", testToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var notes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "first note", notes[0]["title"])
	assert.Equal(t, "second note", notes[1]["title"])

	// "admin" sees none of them, and the id lookup is a plain 404.
	rec = request(e, http.MethodGet, "/api/notes", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var adminNotes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adminNotes))
	assert.Empty(t, adminNotes)

	rec = request(e, http.MethodGet, fmt.Sprintf("/api/note/%d", firstID), adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Partial update: title only.
	rec = request(e, http.MethodPut, fmt.Sprintf("/api/note/%d", firstID), testToken,
		`{"title":"renamed first note"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "renamed first note", updated["title"])
	assert.Equal(t, "content of the first note", updated["content"])

	// Delete and verify it is gone.
	rec = request(e, http.MethodDelete, fmt.Sprintf("/api/note/%d", firstID), testToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Note deleted"`, rec.Body.String())

	rec = request(e, http.MethodGet, fmt.Sprintf("/api/note/%d", firstID), testToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NoteValidation(t *testing.T) {
	e, db := newTestServer(t, "router_validation")
	seedUser(t, db, "test", "password123", model.Roles{model.RoleUser})
	token := login(t, e, "test", "password123")

	rec := request(e, http.MethodPost, "/api/note", token,
		`{"title":"smal","content":"a perfectly valid content"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Violations []struct {
			PropertyPath string `json:"propertyPath"`
			Title        string `json:"title"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "title", resp.Violations[0].PropertyPath)
	assert.Equal(t, "Your title must be at least 5 characters long", resp.Violations[0].Title)
}

func TestRouter_CreateUser(t *testing.T) {
	e, db := newTestServer(t, "router_createuser")
	seedUser(t, db, "test", "password123", model.Roles{model.RoleUser})
	seedUser(t, db, "admin", "admin-pass", model.Roles{model.RoleAdmin})

	userBody := `{"firstName":"New","lastName":"Person","userName":"newperson","password":"secret123"}`

	// Non-admin is rejected.
	testToken := login(t, e, "test", "password123")
	rec := request(e, http.MethodPost, "/api/user", testToken, userBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")

	// Admin succeeds, response carries no hash, and the new user can log in.
	adminToken := login(t, e, "admin", "admin-pass")
	rec = request(e, http.MethodPost, "/api/user", adminToken, userBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$")

	login(t, e, "newperson", "secret123")
}

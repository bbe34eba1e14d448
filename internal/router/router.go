package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"notehub/internal/auth"
	"notehub/internal/config"
	"notehub/internal/handler"
	"notehub/internal/validation"
)

// Register wires routes and middleware. Every note route and the user
// route sit behind the JWT guard; only login and token refresh are public.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validation.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.POST("/token/refresh", authHandler.Refresh)
	api.POST("/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Note routes
	secured.GET("/note/:id", noteHandler.GetNote)
	secured.GET("/notes", noteHandler.ListNotes)
	secured.POST("/note", noteHandler.CreateNote)
	secured.PUT("/note/:id", noteHandler.UpdateNote)
	secured.DELETE("/note/:id", noteHandler.DeleteNote)

	// User routes (role check happens in the service)
	secured.POST("/user", userHandler.CreateUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

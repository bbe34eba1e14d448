package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"notehub/internal/auth"
	apperrors "notehub/internal/errors"
	"notehub/internal/model"
	"notehub/internal/service"
	"notehub/internal/validation"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest carries a new note. Field order matters: violations are
// reported title first, content second.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"notblank,min=5,max=255"`
	Content string `json:"content" validate:"notblank,min=5,max=255"`
}

// UpdateNoteRequest carries a partial note update. Absent fields are left
// untouched; present fields are validated like on creation.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,notblank,min=5,max=255"`
	Content *string `json:"content" validate:"omitempty,notblank,min=5,max=255"`
}

// NoteResponse is the transport shape of a note.
type NoteResponse struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func toNoteResponse(note *model.Note) NoteResponse {
	resp := NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
	if !note.UpdatedAt.IsZero() {
		updatedAt := note.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func toNoteResponses(notes []model.Note) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, toNoteResponse(&notes[i]))
	}
	return responses
}

// callerClaims extracts the authenticated user's claims set by the JWT middleware.
func callerClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func noteID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// A malformed id resolves like an absent note.
		return 0, apperrors.ErrNoteNotFound
	}
	return uint(id), nil
}

// GetNote godoc
// @Summary Get one of the caller's notes
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} NoteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /note/{id} [get]
func (h *NoteHandler) GetNote(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	id, err := noteID(c)
	if err != nil {
		return notFound(c)
	}

	note, err := h.noteService.Get(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// ListNotes godoc
// @Summary List all of the caller's notes
// @Tags notes
// @Produce json
// @Success 200 {array} NoteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// CreateNote godoc
// @Summary Create a note owned by the caller
// @Tags notes
// @Accept json
// @Produce json
// @Param request body CreateNoteRequest true "Note data"
// @Success 200 {object} NoteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} validation.ErrorResponse
// @Security BearerAuth
// @Router /note [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(c, err)
	}

	note, err := h.noteService.Create(c.Request().Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// UpdateNote godoc
// @Summary Update one of the caller's notes
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "Fields to replace"
// @Success 200 {object} NoteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} validation.ErrorResponse
// @Security BearerAuth
// @Router /note/{id} [put]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	id, err := noteID(c)
	if err != nil {
		return notFound(c)
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(c, err)
	}

	note, err := h.noteService.Get(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return mapError(c, err)
	}

	note, err = h.noteService.Update(c.Request().Context(), note, req.Title, req.Content)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// DeleteNote godoc
// @Summary Delete one of the caller's notes
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {string} string "Note deleted"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /note/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	id, err := noteID(c)
	if err != nil {
		return notFound(c)
	}

	note, err := h.noteService.Get(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return mapError(c, err)
	}

	if err := h.noteService.Delete(c.Request().Context(), note); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, "Note deleted")
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{
		Message: "Note not found",
		Code:    "NOTE_NOT_FOUND",
	})
}

// unprocessable renders validator field errors as a 422 violations body.
func unprocessable(c echo.Context, err error) error {
	if resp, ok := validation.Translate(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// mapError converts a domain error into its HTTP projection.
func mapError(c echo.Context, err error) error {
	if errors.Is(err, apperrors.ErrNoteNotFound) {
		return notFound(c)
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

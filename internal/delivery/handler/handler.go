package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"notes-service/internal/apperrors"
	"notes-service/internal/application/interfaces"
)

type Handler struct {
	noteService interfaces.NoteService
	userService interfaces.UserService
	tagService  interfaces.TagService
}

func NewHandler(
	noteService interfaces.NoteService,
	userService interfaces.UserService,
	tagService interfaces.TagService,
) *Handler {
	return &Handler{
		noteService: noteService,
		userService: userService,
		tagService:  tagService,
	}
}

type ServerConfig struct {
	RateLimit RateLimitConfig
	Logger    zerolog.Logger
}

// NewServer builds the echo instance with middleware and every route.
func NewServer(h *Handler, cfg ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	e.Use(requestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(recoverer())
	if cfg.RateLimit.RPS > 0 {
		e.Use(rateLimiter(cfg.RateLimit))
	}
	e.Use(middleware.BodyLimit("1M"))

	h.RegisterRoutes(e)
	return e
}

// RegisterRoutes attaches auth per route so unknown paths still 404.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := RequireAuth(h.userService)

	e.GET("/health", h.Health)
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout, auth)
	e.GET("/profile", h.GetProfile, auth)
	e.PUT("/profile", h.UpdateProfile, auth)

	e.GET("/note", h.ListNotes, auth)
	e.POST("/note", h.CreateNote, auth)
	e.GET("/note/:note_id", h.GetNote, auth)
	e.PUT("/note/:note_id", h.UpdateNote, auth)
	e.DELETE("/note/:note_id", h.DeleteNote, auth)
	e.POST("/note/:note_id/tag/:tag_id", h.AttachTag, auth)
	e.DELETE("/note/:note_id/tag/:tag_id", h.DetachTag, auth)
	e.POST("/note/:note_id/share", h.ShareNote, auth)

	e.POST("/tag", h.CreateTag, auth)
	e.GET("/tag/autocomplete", h.AutocompleteTags, auth)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate binds path, query and body into req and runs the
// validator. Any failure is a 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("Request could not be parsed.").WithCause(err)
	}
	return c.Validate(req)
}

func bindNoteID(c echo.Context) (uint, error) {
	var noteID uint
	if err := echo.PathParamsBinder(c).MustUint("note_id", &noteID).BindError(); err != nil || noteID == 0 {
		return 0, apperrors.NotFound("Note not found.")
	}
	return noteID, nil
}

func bindTagID(c echo.Context) (uint, error) {
	var tagID uint
	if err := echo.PathParamsBinder(c).MustUint("tag_id", &tagID).BindError(); err != nil || tagID == 0 {
		return 0, apperrors.NotFound("Tag not found.")
	}
	return tagID, nil
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memohai/chirp/internal/feed"
)

// ProfileHandler serves public profiles by username.
type ProfileHandler struct {
	feed   *feed.Service
	logger *slog.Logger
}

func NewProfileHandler(log *slog.Logger, feedService *feed.Service) *ProfileHandler {
	return &ProfileHandler{
		feed:   feedService,
		logger: log.With(slog.String("handler", "profile")),
	}
}

func (h *ProfileHandler) Register(e *echo.Echo) {
	e.GET("/profiles/:username", h.GetByUsername)
}

// GetByUsername godoc
// @Summary Get profile
// @Description Get the public profile for a username
// @Tags profiles
// @Param username path string true "Username"
// @Success 200 {object} directory.AuthorSummary
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles/{username} [get]
func (h *ProfileHandler) GetByUsername(c echo.Context) error {
	profile, err := h.feed.GetProfileByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

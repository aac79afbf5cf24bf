// Package handlers exposes the feed, profile and account operations over HTTP.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memohai/chirp/internal/accounts"
	"github.com/memohai/chirp/internal/auth"
)

// AuthHandler serves account sign-up and login, issuing JWT sessions.
type AuthHandler struct {
	accountService *accounts.Service
	jwtSecret      string
	expiresIn      time.Duration
	logger         *slog.Logger
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken     string `json:"access_token"`
	TokenType       string `json:"token_type"`
	ExpiresAt       string `json:"expires_at"`
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

func NewAuthHandler(log *slog.Logger, accountService *accounts.Service, jwtSecret string, expiresIn time.Duration) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		jwtSecret:      jwtSecret,
		expiresIn:      expiresIn,
		logger:         log.With(slog.String("handler", "auth")),
	}
}

func (h *AuthHandler) Register(e *echo.Echo) {
	e.POST("/auth/register", h.SignUp)
	e.POST("/auth/login", h.Login)
	e.GET("/auth/me", h.Me)
}

// SignUp godoc
// @Summary Register
// @Description Create a local account and issue a JWT
// @Tags auth
// @Param payload body accounts.RegisterRequest true "Registration request"
// @Success 201 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	if err := h.ready(); err != nil {
		return err
	}
	var req accounts.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	account, err := h.accountService.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		case errors.Is(err, accounts.ErrInvalidUsername),
			errors.Is(err, accounts.ErrInvalidPassword),
			errors.Is(err, accounts.ErrInvalidImageURL):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "register failed").SetInternal(err)
	}
	return h.issue(c, http.StatusCreated, account)
}

// Login godoc
// @Summary Login
// @Description Validate user credentials and issue a JWT
// @Tags auth
// @Param payload body LoginRequest true "Login request"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if err := h.ready(); err != nil {
		return err
	}
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	account, err := h.accountService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed").SetInternal(err)
	}
	return h.issue(c, http.StatusOK, account)
}

// Me godoc
// @Summary Current account
// @Description Get the signed-in account
// @Tags auth
// @Success 200 {object} accounts.Account
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	if h.accountService == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "account service not configured")
	}
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "sign in to continue")
	}
	account, err := h.accountService.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load account failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, account)
}

func (h *AuthHandler) ready() error {
	if h.accountService == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "account service not configured")
	}
	if strings.TrimSpace(h.jwtSecret) == "" || h.expiresIn <= 0 {
		return echo.NewHTTPError(http.StatusInternalServerError, "jwt not configured")
	}
	return nil
}

func (h *AuthHandler) issue(c echo.Context, status int, account accounts.Account) error {
	token, expiresAt, err := auth.GenerateToken(account.ID, h.jwtSecret, h.expiresIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "issue token failed").SetInternal(err)
	}
	h.logger.Debug("session issued", slog.String("user_id", account.ID))
	return c.JSON(status, TokenResponse{
		AccessToken:     token,
		TokenType:       "Bearer",
		ExpiresAt:       expiresAt.Format(time.RFC3339),
		UserID:          account.ID,
		Username:        account.Username,
		ProfileImageURL: account.ProfileImageURL,
	})
}

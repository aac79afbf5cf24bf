package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memohai/chirp/internal/feed"
	"github.com/memohai/chirp/internal/logger"
)

const genericErrorMessage = "something went wrong"

// ErrorResponse is the API error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NewHTTPErrorHandler renders every error returned by a handler or middleware as an
// ErrorResponse. Server-side failures are logged with the request logger and answered
// with a generic message.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	log = log.With(slog.String("component", "http_error"))
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(c.Request().Context()).Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Warn("write error response failed", slog.Any("error", writeErr))
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var verr *feed.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Code: feed.CodeValidation, Message: verr.Message, Field: verr.Field}
	}
	var ferr *feed.Error
	if errors.As(err, &ferr) {
		switch code := feed.Code(ferr); code {
		case feed.CodeUnauthorized:
			return http.StatusUnauthorized, ErrorResponse{Code: code, Message: ferr.Message}
		case feed.CodeNotFound:
			return http.StatusNotFound, ErrorResponse{Code: code, Message: ferr.Message}
		default:
			return http.StatusInternalServerError, ErrorResponse{Code: feed.CodeInternal, Message: genericErrorMessage}
		}
	}
	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		if herr.Code >= http.StatusInternalServerError {
			return herr.Code, ErrorResponse{Code: feed.CodeInternal, Message: genericErrorMessage}
		}
		msg, ok := herr.Message.(string)
		if !ok {
			msg = fmt.Sprint(herr.Message)
		}
		return herr.Code, ErrorResponse{Code: statusCode(herr.Code), Message: msg}
	}
	return http.StatusInternalServerError, ErrorResponse{Code: feed.CodeInternal, Message: genericErrorMessage}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return feed.CodeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return feed.CodeUnauthorized
	case http.StatusNotFound:
		return feed.CodeNotFound
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "BAD_REQUEST"
	}
}

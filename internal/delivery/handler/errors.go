package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"notes-service/internal/apperrors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler renders apperrors and echo errors as ErrorResponse.
// Internal causes never reach the client; the request logger records them.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(resp.Code)
		} else {
			writeErr = c.JSON(resp.Code, resp)
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}

// toErrorResponse prefers the outermost apperrors value, since bind failures
// are wrapped echo errors.
func toErrorResponse(err error) ErrorResponse {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return fromAppError(appErr)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			message = m
		}
		return ErrorResponse{
			Code:    httpErr.Code,
			Status:  http.StatusText(httpErr.Code),
			Message: message,
		}
	}
	return fromAppError(apperrors.From(err))
}

func fromAppError(appErr *apperrors.Error) ErrorResponse {
	status := appErr.HTTPStatus()
	return ErrorResponse{
		Code:    status,
		Status:  http.StatusText(status),
		Message: appErr.Message,
		Errors:  appErr.Details,
	}
}

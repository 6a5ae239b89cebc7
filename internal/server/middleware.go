package server

import (
	"context"
	"net/http"

	"gamepanel/internal/errors"
	"gamepanel/internal/logger"

	"github.com/labstack/echo/v4"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ContextKeyUserID is the key for user ID in context
	ContextKeyUserID contextKey = "user_id"
)

// contextEnricher propagates the request id into the request context under
// the logger's key, so components below the handler can log with it
func contextEnricher() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				if id, ok := c.Get("request_id").(string); ok {
					reqID = id
				}
			}
			if reqID != "" {
				ctx = context.WithValue(ctx, logger.ContextKeyRequestID, reqID)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// ErrorHandler is a custom error handler for the server
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	var body interface{} = errors.HTTPErrorResponse{
		Error: errors.ErrorInfo{
			Code:    errors.ErrInternal,
			Message: "Internal server error",
		},
	}

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		if resp, ok := e.Message.(errors.HTTPErrorResponse); ok {
			body = resp
		} else if msg, ok := e.Message.(string); ok {
			body = errors.HTTPErrorResponse{
				Error: errors.ErrorInfo{
					Code:    errors.ErrInternal,
					Message: msg,
				},
			}
		}
	case *errors.PanelError:
		code = e.GetHTTPStatus()
		body = errors.HTTPErrorResponse{
			Error: errors.ErrorInfo{
				Code:    e.Code,
				Message: e.Message,
				Details: e.Details,
			},
			Context: e.Context,
		}
	}

	reqID := c.Request().Header.Get(echo.HeaderXRequestID)
	c.Logger().Errorf("Request error: %s %s %s [%s] %d %v",
		reqID,
		c.Request().Method,
		c.Request().URL.Path,
		c.RealIP(),
		code,
		err,
	)

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			c.NoContent(code)
		} else {
			c.JSON(code, body)
		}
	}
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(logger.ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

package middleware

import (
	"net/http"

	"dealflow/pkg/logger"

	jsonres "dealflow/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo fallback for errors that escape handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled error", "path", c.Path(), "error", err.Error())
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}

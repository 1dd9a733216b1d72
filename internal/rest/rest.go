package rest

import (
	"errors"
	"net/http"
	"strings"

	"dealflow/domain"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// errorStatus maps service errors to HTTP status by message class.
func errorStatus(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "conflict"):
		return http.StatusConflict
	case strings.Contains(msg, "already exists"), strings.Contains(msg, "invalid"),
		strings.Contains(msg, "required"), strings.Contains(msg, "no investments"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// currentUserID reads the id stashed by the auth middleware.
func currentUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}

// Package handler contains the HTTP handlers. Handlers bind and sanity
// check request bodies, delegate to the repository layer, and translate
// repository sentinels and validation violations into HTTP responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/repository"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter; zero is rejected along with
// non-numeric values.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// violationStatus picks the HTTP status for a set of violations.
// Scheduling conflicts with other flights are resource-state conflicts
// (409); everything else is a malformed request (400).
func violationStatus(v schedule.Violations) int {
	if v.Has("airplane") || v.Has("crew") {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// writeError maps a repository error onto an HTTP response. notFound is
// the sentinel-to-404 pair for the entity the handler works with;
// handlers with extra cases check those before calling this.
func writeError(c echo.Context, err error, notFound error) error {
	var v schedule.Violations
	switch {
	case errors.As(err, &v):
		return c.JSON(violationStatus(v), echo.Map{"errors": v})
	case notFound != nil && errors.Is(err, notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "resource is still referenced"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

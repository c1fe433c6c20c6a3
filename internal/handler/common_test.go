package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vllynnyk/airport-service/internal/repository"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

func testContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestViolationStatus(t *testing.T) {
	// Double-booking is a conflict with existing resource state, not a
	// malformed request.
	assert.Equal(t, http.StatusConflict, violationStatus(schedule.Violations{"airplane": "busy"}))
	assert.Equal(t, http.StatusConflict, violationStatus(schedule.Violations{"crew": "busy", "schedule": "bad"}))
	assert.Equal(t, http.StatusBadRequest, violationStatus(schedule.Violations{"schedule": "bad"}))
	assert.Equal(t, http.StatusBadRequest, violationStatus(schedule.Violations{"rows": "too small"}))
}

func TestWriteErrorViolations(t *testing.T) {
	c, rec := testContext(t)
	v := schedule.Violations{"airplane": "conflicts with flight 8"}
	require.NoError(t, writeError(c, v, nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflicts with flight 8")
}

func TestWriteErrorSentinels(t *testing.T) {
	c, rec := testContext(t)
	require.NoError(t, writeError(c, repository.ErrFlightNotFound, repository.ErrFlightNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = testContext(t)
	require.NoError(t, writeError(c, repository.ErrForbidden, repository.ErrOrderNotFound))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = testContext(t)
	require.NoError(t, writeError(c, repository.ErrConflict, repository.ErrAirportNotFound))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetUserIDTypes(t *testing.T) {
	c, _ := testContext(t)
	c.Set("user_id", float64(7)) // JWT numeric claims decode as float64
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	c.Set("user_id", "12")
	id, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	c.Set("user_id", nil)
	_, err = getUserID(c)
	assert.Error(t, err)
}

func TestDedupeCrewIDs(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, dedupe([]uint64{3, 1, 0, 3, 2, 1}))
	assert.Empty(t, dedupe([]uint64{0, 0}))
}

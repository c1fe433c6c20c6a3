package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/repository"
)

// AirplaneHandler serves the /v1/airplane-types and /v1/airplanes
// endpoints.
type AirplaneHandler struct {
	Types     *repository.AirplaneTypeRepo
	Airplanes *repository.AirplaneRepo
	Flights   *repository.FlightRepo
}

func NewAirplaneHandler(types *repository.AirplaneTypeRepo, airplanes *repository.AirplaneRepo, flights *repository.FlightRepo) *AirplaneHandler {
	if types == nil || airplanes == nil || flights == nil {
		panic("nil repository passed to NewAirplaneHandler")
	}
	return &AirplaneHandler{Types: types, Airplanes: airplanes, Flights: flights}
}

// CreateType handles POST /v1/airplane-types.
func (h *AirplaneHandler) CreateType(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := &model.AirplaneType{Name: name}
	if err := h.Types.Create(c.Request().Context(), t); err != nil {
		if err == repository.ErrAirplaneTypeNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airplane type name already taken"})
		}
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTypes handles GET /v1/airplane-types.
func (h *AirplaneHandler) ListTypes(c echo.Context) error {
	items, err := h.Types.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetType handles GET /v1/airplane-types/:id and lists the airplanes of
// the type in the detail view.
func (h *AirplaneHandler) GetType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Types.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrAirplaneTypeNotFound)
	}
	airplanes, err := h.Airplanes.ListByType(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"airplane_type": t, "airplanes": airplanes})
}

// UpdateType handles PUT /v1/airplane-types/:id.
func (h *AirplaneHandler) UpdateType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := &model.AirplaneType{ID: id, Name: name}
	if err := h.Types.Update(c.Request().Context(), t); err != nil {
		if err == repository.ErrAirplaneTypeNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airplane type name already taken"})
		}
		return writeError(c, err, repository.ErrAirplaneTypeNotFound)
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteType handles DELETE /v1/airplane-types/:id.
func (h *AirplaneHandler) DeleteType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Types.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, repository.ErrAirplaneTypeNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

type airplaneBody struct {
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
	Type       uint64 `json:"airplane_type"`
}

// Create handles POST /v1/airplanes. Geometry errors come back as field
// violations from the repository.
func (h *AirplaneHandler) Create(c echo.Context) error {
	var body airplaneBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	a := &model.Airplane{Name: name, SeatRows: body.Rows, SeatsInRow: body.SeatsInRow, TypeID: body.Type}
	if err := h.Airplanes.Create(c.Request().Context(), a); err != nil {
		if err == repository.ErrAirplaneNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airplane name already taken"})
		}
		return writeError(c, err, repository.ErrAirplaneTypeNotFound)
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /v1/airplanes.
func (h *AirplaneHandler) List(c echo.Context) error {
	items, err := h.Airplanes.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/airplanes/:id with the airplane's scheduled
// flights.
func (h *AirplaneHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Airplanes.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrAirplaneNotFound)
	}
	flights, err := h.Flights.ListByAirplane(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"airplane": a, "flights": flights})
}

// Update handles PUT /v1/airplanes/:id.
func (h *AirplaneHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body airplaneBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	a := &model.Airplane{ID: id, Name: name, SeatRows: body.Rows, SeatsInRow: body.SeatsInRow, TypeID: body.Type}
	if err := h.Airplanes.Update(c.Request().Context(), a); err != nil {
		if err == repository.ErrAirplaneNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airplane name already taken"})
		}
		if err == repository.ErrAirplaneTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane type not found"})
		}
		return writeError(c, err, repository.ErrAirplaneNotFound)
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /v1/airplanes/:id.
func (h *AirplaneHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Airplanes.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, repository.ErrAirplaneNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

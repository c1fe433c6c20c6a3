package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/repository"
)

// CrewHandler serves the /v1/crew endpoints.
type CrewHandler struct {
	Crew    *repository.CrewRepo
	Flights *repository.FlightRepo
}

func NewCrewHandler(crew *repository.CrewRepo, flights *repository.FlightRepo) *CrewHandler {
	if crew == nil || flights == nil {
		panic("nil repository passed to NewCrewHandler")
	}
	return &CrewHandler{Crew: crew, Flights: flights}
}

type crewBody struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (b *crewBody) validate() (string, bool) {
	b.FirstName = strings.TrimSpace(b.FirstName)
	b.LastName = strings.TrimSpace(b.LastName)
	if b.FirstName == "" || b.LastName == "" {
		return "first_name and last_name are required", false
	}
	return "", true
}

// Create handles POST /v1/crew.
func (h *CrewHandler) Create(c echo.Context) error {
	var body crewBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m := &model.Crew{FirstName: body.FirstName, LastName: body.LastName}
	if err := h.Crew.Create(c.Request().Context(), m); err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/crew.
func (h *CrewHandler) List(c echo.Context) error {
	items, err := h.Crew.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/crew/:id with the member's assigned flights.
func (h *CrewHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Crew.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrCrewNotFound)
	}
	flights, err := h.Flights.ListByCrew(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"crew_member": m, "flights": flights})
}

// Update handles PUT /v1/crew/:id.
func (h *CrewHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body crewBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m := &model.Crew{ID: id, FirstName: body.FirstName, LastName: body.LastName}
	if err := h.Crew.Update(c.Request().Context(), m); err != nil {
		return writeError(c, err, repository.ErrCrewNotFound)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/crew/:id.
func (h *CrewHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Crew.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, repository.ErrCrewNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

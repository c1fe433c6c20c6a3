package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/repository"
)

// AirportHandler serves the /v1/airports endpoints.
type AirportHandler struct {
	Airports *repository.AirportRepo
	Routes   *repository.RouteRepo
}

func NewAirportHandler(airports *repository.AirportRepo, routes *repository.RouteRepo) *AirportHandler {
	if airports == nil || routes == nil {
		panic("nil repository passed to NewAirportHandler")
	}
	return &AirportHandler{Airports: airports, Routes: routes}
}

type airportBody struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
	Country        string `json:"country"`
}

func (b *airportBody) validate() (string, bool) {
	b.Name = strings.TrimSpace(b.Name)
	b.ClosestBigCity = strings.TrimSpace(b.ClosestBigCity)
	b.Country = strings.TrimSpace(b.Country)
	switch {
	case b.Name == "":
		return "name is required", false
	case b.ClosestBigCity == "":
		return "closest_big_city is required", false
	case b.Country == "":
		return "country is required", false
	}
	return "", true
}

// Create handles POST /v1/airports. Names are unique ignoring case, so a
// second "muc" after "MUC" is rejected with 409.
func (h *AirportHandler) Create(c echo.Context) error {
	var body airportBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a := &model.Airport{Name: body.Name, ClosestBigCity: body.ClosestBigCity, Country: body.Country}
	if err := h.Airports.Create(c.Request().Context(), a); err != nil {
		if err == repository.ErrAirportNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airport name already taken"})
		}
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /v1/airports.
func (h *AirportHandler) List(c echo.Context) error {
	items, err := h.Airports.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/airports/:id and includes the routes touching the
// airport in the detail view.
func (h *AirportHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Airports.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrAirportNotFound)
	}
	departing, err := h.Routes.ListBySource(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, nil)
	}
	arriving, err := h.Routes.ListByDestination(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"airport":          a,
		"departing_routes": departing,
		"arriving_routes":  arriving,
	})
}

// Update handles PUT /v1/airports/:id.
func (h *AirportHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body airportBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a := &model.Airport{ID: id, Name: body.Name, ClosestBigCity: body.ClosestBigCity, Country: body.Country}
	if err := h.Airports.Update(c.Request().Context(), a); err != nil {
		if err == repository.ErrAirportNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airport name already taken"})
		}
		return writeError(c, err, repository.ErrAirportNotFound)
	}
	updated, err := h.Airports.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrAirportNotFound)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/airports/:id.
func (h *AirportHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Airports.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, repository.ErrAirportNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/repository"
)

// FlightHandler serves the /v1/flights endpoints. Create and Update go
// through the repository's transactional save path, which is where the
// airplane and crew double-booking checks run.
type FlightHandler struct {
	Flights *repository.FlightRepo
}

func NewFlightHandler(flights *repository.FlightRepo) *FlightHandler {
	if flights == nil {
		panic("nil repository passed to NewFlightHandler")
	}
	return &FlightHandler{Flights: flights}
}

// flightBody carries the crew list as a pointer so an omitted field can
// be told apart from an explicit empty list: omitted keeps the persisted
// crew on update, empty clears it.
type flightBody struct {
	Route         uint64    `json:"route"`
	Airplane      uint64    `json:"airplane"`
	DepartureDate time.Time `json:"departure_date"`
	ArrivalDate   time.Time `json:"arrival_date"`
	Crew          *[]uint64 `json:"crew"`
}

func (b *flightBody) validate() (string, bool) {
	switch {
	case b.Route == 0:
		return "route is required", false
	case b.Airplane == 0:
		return "airplane is required", false
	case b.DepartureDate.IsZero() || b.ArrivalDate.IsZero():
		return "departure_date and arrival_date are required", false
	}
	return "", true
}

func dedupe(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Create handles POST /v1/flights. A schedule overlap on the airplane or
// any crew member comes back as a 409 with per-resource errors.
func (h *FlightHandler) Create(c echo.Context) error {
	var body flightBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	f := &model.Flight{
		RouteID:       body.Route,
		AirplaneID:    body.Airplane,
		DepartureDate: body.DepartureDate.UTC(),
		ArrivalDate:   body.ArrivalDate.UTC(),
	}
	if body.Crew != nil {
		f.CrewIDs = dedupe(*body.Crew)
	}
	if err := h.Flights.Create(c.Request().Context(), f); err != nil {
		switch err {
		case repository.ErrRouteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		case repository.ErrAirplaneNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane not found"})
		case repository.ErrCrewNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, f)
}

// List handles GET /v1/flights, ordered by departure.
func (h *FlightHandler) List(c echo.Context) error {
	items, err := h.Flights.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/flights/:id.
func (h *FlightHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	f, err := h.Flights.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrFlightNotFound)
	}
	return c.JSON(http.StatusOK, f)
}

// Update handles PUT /v1/flights/:id. The flight's own interval never
// conflicts with itself, so rescheduling within the current slot works.
func (h *FlightHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body flightBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	f := &model.Flight{
		ID:            id,
		RouteID:       body.Route,
		AirplaneID:    body.Airplane,
		DepartureDate: body.DepartureDate.UTC(),
		ArrivalDate:   body.ArrivalDate.UTC(),
	}
	crewProvided := body.Crew != nil
	if crewProvided {
		f.CrewIDs = dedupe(*body.Crew)
	}
	if err := h.Flights.Update(c.Request().Context(), f, crewProvided); err != nil {
		switch err {
		case repository.ErrRouteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		case repository.ErrAirplaneNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane not found"})
		case repository.ErrCrewNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return writeError(c, err, repository.ErrFlightNotFound)
	}
	return c.JSON(http.StatusOK, f)
}

// Delete handles DELETE /v1/flights/:id. Flights with sold tickets are
// protected.
func (h *FlightHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Flights.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, repository.ErrFlightNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

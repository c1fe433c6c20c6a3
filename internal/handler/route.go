package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/repository"
)

// RouteHandler serves the /v1/routes endpoints.
type RouteHandler struct {
	Routes  *repository.RouteRepo
	Flights *repository.FlightRepo
}

func NewRouteHandler(routes *repository.RouteRepo, flights *repository.FlightRepo) *RouteHandler {
	if routes == nil || flights == nil {
		panic("nil repository passed to NewRouteHandler")
	}
	return &RouteHandler{Routes: routes, Flights: flights}
}

type routeBody struct {
	Source      uint64 `json:"source"`
	Destination uint64 `json:"destination"`
	Distance    uint32 `json:"distance"`
}

type routeView struct {
	ID          uint64 `json:"id"`
	Source      uint64 `json:"source"`
	Destination uint64 `json:"destination"`
	Distance    uint32 `json:"distance"`
	Name        string `json:"name"`
}

func newRouteView(rt model.Route) routeView {
	return routeView{
		ID:          rt.ID,
		Source:      rt.SourceID,
		Destination: rt.DestinationID,
		Distance:    rt.Distance,
		Name:        rt.DisplayName(),
	}
}

func routeViews(items []model.Route) []routeView {
	out := make([]routeView, 0, len(items))
	for _, rt := range items {
		out = append(out, newRouteView(rt))
	}
	return out
}

// Create handles POST /v1/routes. A route whose destination equals its
// source, or whose distance is zero, is rejected with field errors.
func (h *RouteHandler) Create(c echo.Context) error {
	var body routeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Source == 0 || body.Destination == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source and destination are required"})
	}
	rt := &model.Route{SourceID: body.Source, DestinationID: body.Destination, Distance: body.Distance}
	if err := h.Routes.Create(c.Request().Context(), rt); err != nil {
		if err == repository.ErrRouteExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
		}
		return writeError(c, err, repository.ErrAirportNotFound)
	}
	return c.JSON(http.StatusCreated, newRouteView(*rt))
}

// List handles GET /v1/routes.
func (h *RouteHandler) List(c echo.Context) error {
	items, err := h.Routes.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": routeViews(items)})
}

// Get handles GET /v1/routes/:id with the route's flights in the detail
// view.
func (h *RouteHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rt, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, repository.ErrRouteNotFound)
	}
	flights, err := h.Flights.ListByRoute(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"route": newRouteView(*rt), "flights": flights})
}

// Update handles PUT /v1/routes/:id.
func (h *RouteHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body routeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Source == 0 || body.Destination == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source and destination are required"})
	}
	rt := &model.Route{ID: id, SourceID: body.Source, DestinationID: body.Destination, Distance: body.Distance}
	if err := h.Routes.Update(c.Request().Context(), rt); err != nil {
		if err == repository.ErrRouteExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
		}
		if err == repository.ErrAirportNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airport not found"})
		}
		return writeError(c, err, repository.ErrRouteNotFound)
	}
	return c.JSON(http.StatusOK, newRouteView(*rt))
}

// Delete handles DELETE /v1/routes/:id.
func (h *RouteHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Routes.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, repository.ErrRouteNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

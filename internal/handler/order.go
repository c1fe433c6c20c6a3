package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/queue"
	"github.com/vllynnyk/airport-service/internal/repository"
	queue_publisher "github.com/vllynnyk/airport-service/internal/service"
)

// OrderHandler serves the /v1/orders endpoints. Orders are scoped to the
// authenticated user on every operation.
type OrderHandler struct {
	Orders *repository.OrderRepo
}

func NewOrderHandler(orders *repository.OrderRepo) *OrderHandler {
	if orders == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders}
}

type orderCreateReq struct {
	Tickets []model.TicketSpec `json:"tickets"`
}

// Create handles POST /v1/orders. The order is written atomically with
// all of its tickets; any seat problem cancels the whole order. A
// successful booking publishes an order.created event, and a broker
// failure there never fails the request.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req orderCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	order, err := h.Orders.Create(c.Request().Context(), userID, req.Tickets)
	if err != nil {
		switch {
		case err == repository.ErrEmptyOrder:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets is required"})
		case err == repository.ErrFlightNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		case errors.Is(err, repository.ErrSeatTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return writeError(c, err, nil)
	}

	go publishOrderCreated(order)

	return c.JSON(http.StatusCreated, order)
}

func publishOrderCreated(order *model.Order) {
	ev := queue.OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range order.Tickets {
		ev.Tickets = append(ev.Tickets, queue.OrderTicket{
			FlightID: t.FlightID,
			Route:    t.RouteName,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishOrderCreated(ctx, ev)
}

// List handles GET /v1/orders and returns the caller's orders, newest
// first.
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/orders/:id. Foreign orders are refused with 403.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	order, err := h.Orders.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return writeError(c, err, repository.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /v1/orders/:id, cancelling an order and freeing
// its seats.
func (h *OrderHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Orders.DeleteByIDForUser(c.Request().Context(), id, userID); err != nil {
		return writeError(c, err, repository.ErrOrderNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

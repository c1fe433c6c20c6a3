package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

// ErrOrderNotFound indicates that an order lookup failed.
var ErrOrderNotFound = errors.New("order not found")

// ErrEmptyOrder is returned when an order is submitted with no tickets.
var ErrEmptyOrder = errors.New("order must contain at least one ticket")

// ErrSeatTaken is returned when a requested seat is already ticketed on
// the same flight.
var ErrSeatTaken = errors.New("seat already taken")

// OrderRepo manages persistence for orders and their tickets. Order
// creation is all-or-nothing: every ticket is validated against the
// flight's airplane geometry and inserted in one transaction, and a
// single failure rolls back the whole order.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

type seatGeometry struct {
	rows       uint32
	seatsInRow uint32
}

// Create validates every requested ticket and writes the order with all
// its tickets atomically. Seat bounds come from each flight's airplane;
// the unique index on (flight_id, row_num, seat_num) is the final arbiter
// for double bookings and maps to ErrSeatTaken.
func (r *OrderRepo) Create(ctx context.Context, userID uint64, specs []model.TicketSpec) (*model.Order, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// One geometry lookup per distinct flight; orders usually repeat the
	// same flight across tickets.
	geometries := make(map[uint64]seatGeometry)
	violations := schedule.Violations{}
	for i, spec := range specs {
		geo, ok := geometries[spec.FlightID]
		if !ok {
			const q = `SELECT a.seat_rows, a.seats_in_row
			           FROM flights f
			           JOIN airplanes a ON a.id = f.airplane_id
			           WHERE f.id = ?`
			if err := tx.QueryRowContext(ctx, q, spec.FlightID).Scan(&geo.rows, &geo.seatsInRow); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, ErrFlightNotFound
				}
				return nil, err
			}
			geometries[spec.FlightID] = geo
		}
		for field, msg := range schedule.CheckSeat(spec.Row, spec.Seat, geo.rows, geo.seatsInRow) {
			violations[fmt.Sprintf("tickets[%d].%s", i, field)] = msg
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order := &model.Order{ID: uint64(orderID), UserID: userID}
	for _, spec := range specs {
		const q = `INSERT INTO tickets (flight_id, order_id, row_num, seat_num) VALUES (?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q, spec.FlightID, orderID, spec.Row, spec.Seat)
		if err != nil {
			if isDuplicateKey(err) {
				return nil, fmt.Errorf("flight %d row %d seat %d: %w", spec.FlightID, spec.Row, spec.Seat, ErrSeatTaken)
			}
			return nil, err
		}
		ticketID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		order.Tickets = append(order.Tickets, model.Ticket{
			ID:       uint64(ticketID),
			Row:      spec.Row,
			Seat:     spec.Seat,
			FlightID: spec.FlightID,
			OrderID:  uint64(orderID),
		})
	}

	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM orders WHERE id = ?`, orderID).Scan(&order.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return order, nil
}

// ListByUser returns the user's orders newest first, tickets included.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	index := make(map[uint64]int)
	ids := make([]any, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	placeholders := strings.Repeat("?, ", len(ids))
	placeholders = placeholders[:len(placeholders)-2]
	q := ticketSelect + ` WHERE t.order_id IN (` + placeholders + `) ORDER BY t.id`
	trows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		t, err := scanTicket(trows)
		if err != nil {
			return nil, err
		}
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return orders, trows.Err()
}

const ticketSelect = `SELECT t.id, t.row_num, t.seat_num, t.flight_id, t.order_id,
                             CONCAT(src.name, ' - ', dst.name), f.departure_date, f.arrival_date
                      FROM tickets t
                      JOIN flights f ON f.id = t.flight_id
                      JOIN routes r ON r.id = f.route_id
                      JOIN airports src ON src.id = r.source_id
                      JOIN airports dst ON dst.id = r.destination_id`

func scanTicket(rows *sql.Rows) (model.Ticket, error) {
	var t model.Ticket
	err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID, &t.RouteName, &t.FlightDep, &t.FlightArr)
	return t, err
}

// GetByIDForUser retrieves one order with tickets, enforcing ownership.
// A foreign order is reported as ErrForbidden, not hidden as a 404, so a
// user listing their own ids never sees ghosts.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = ?`, orderID,
	).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrForbidden
	}

	rows, err := r.db.QueryContext(ctx, ticketSelect+` WHERE t.order_id = ? ORDER BY t.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		o.Tickets = append(o.Tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteByIDForUser cancels an order and frees its seats, enforcing
// ownership. Tickets go first, then the order row, in one transaction.
func (r *OrderRepo) DeleteByIDForUser(ctx context.Context, orderID, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID uint64
	if err := tx.QueryRowContext(ctx, `SELECT user_id FROM orders WHERE id = ? FOR UPDATE`, orderID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE order_id = ?`, orderID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

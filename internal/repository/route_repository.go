package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

// ErrRouteNotFound indicates that a route was not located in the DB.
var ErrRouteNotFound = errors.New("route not found")

// ErrRouteExists is returned when the (source, destination) pair collides
// with the unique index on routes.
var ErrRouteExists = errors.New("route already exists")

// RouteRepo manages persistence for routes. Every write path resolves both
// endpoint airports and runs the self-loop check before touching the
// table, so an invalid route cannot be saved by construction.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo {
	return &RouteRepo{db: db}
}

// resolveEndpoints loads the names of both endpoint airports, returning
// ErrAirportNotFound when either id does not resolve. The names feed both
// the self-loop error message and the derived display name.
func (r *RouteRepo) resolveEndpoints(ctx context.Context, rt *model.Route) error {
	const q = `SELECT id, name FROM airports WHERE id IN (?, ?)`
	rows, err := r.db.QueryContext(ctx, q, rt.SourceID, rt.DestinationID)
	if err != nil {
		return err
	}
	defer rows.Close()
	names := make(map[uint64]string, 2)
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return err
	}
	src, ok := names[rt.SourceID]
	if !ok {
		return ErrAirportNotFound
	}
	dst, ok := names[rt.DestinationID]
	if !ok {
		return ErrAirportNotFound
	}
	rt.SourceName = src
	rt.DestinationName = dst
	return nil
}

// validate runs the route invariants: endpoints must differ and the
// distance must be positive. All applicable errors are collected together.
func validateRoute(rt *model.Route) schedule.Violations {
	v := schedule.CheckRouteEndpoints(rt.SourceID, rt.DestinationID, rt.SourceName, rt.DestinationName)
	if rt.Distance == 0 {
		v["distance"] = "distance must be positive"
	}
	return v
}

// Create inserts a new route after resolving endpoints and validating the
// self-loop and distance invariants. A duplicate (source, destination)
// pair is reported as ErrRouteExists.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	if err := r.resolveEndpoints(ctx, rt); err != nil {
		return err
	}
	if v := validateRoute(rt); len(v) > 0 {
		return v
	}
	const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRouteExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// Update rewrites a route's endpoints and distance, re-running the same
// invariants as Create. Returns ErrRouteNotFound when the row is missing.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
	if err := r.resolveEndpoints(ctx, rt); err != nil {
		return err
	}
	if v := validateRoute(rt); len(v) > 0 {
		return v
	}
	const q = `UPDATE routes SET source_id = ?, destination_id = ?, distance = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRouteExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM routes WHERE id = ?`, rt.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRouteNotFound
			}
			return err
		}
	}
	return nil
}

const routeSelect = `SELECT r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name
                     FROM routes r
                     JOIN airports src ON src.id = r.source_id
                     JOIN airports dst ON dst.id = r.destination_id`

// GetByID retrieves a route with both endpoint names joined in.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*model.Route, error) {
	var rt model.Route
	err := r.db.QueryRowContext(ctx, routeSelect+` WHERE r.id = ?`, id).Scan(
		&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance, &rt.SourceName, &rt.DestinationName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// List returns all routes with endpoint names, ordered by id.
func (r *RouteRepo) List(ctx context.Context) ([]model.Route, error) {
	return r.listWhere(ctx, ` ORDER BY r.id`)
}

// ListBySource returns routes departing from the given airport; it feeds
// the airport detail view.
func (r *RouteRepo) ListBySource(ctx context.Context, airportID uint64) ([]model.Route, error) {
	return r.listWhere(ctx, ` WHERE r.source_id = ? ORDER BY r.id`, airportID)
}

// ListByDestination returns routes arriving at the given airport.
func (r *RouteRepo) ListByDestination(ctx context.Context, airportID uint64) ([]model.Route, error) {
	return r.listWhere(ctx, ` WHERE r.destination_id = ? ORDER BY r.id`, airportID)
}

func (r *RouteRepo) listWhere(ctx context.Context, suffix string, args ...any) ([]model.Route, error) {
	rows, err := r.db.QueryContext(ctx, routeSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Route, 0)
	for rows.Next() {
		var rt model.Route
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance, &rt.SourceName, &rt.DestinationName); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Delete removes a route unless flights still reference it.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flights WHERE route_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRouteNotFound
	}
	return nil
}

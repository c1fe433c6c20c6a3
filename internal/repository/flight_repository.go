package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

// ErrFlightNotFound indicates that a flight lookup failed.
var ErrFlightNotFound = errors.New("flight not found")

// FlightRepo manages persistence for flights and their crew assignments.
// Flight writes run inside a SERIALIZABLE transaction: conflicting
// assignments for the airplane and every requested crew member are read
// with FOR UPDATE, checked for interval overlap, and only then is the
// flight written. Validation cannot be bypassed because it lives inside
// the only save path.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// serializableTx opens a transaction at SERIALIZABLE isolation. The
// stricter level narrows the window between the overlap check and the
// insert when two flights race for the same airplane or crew member.
func (r *FlightRepo) serializableTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// airplaneAssignmentsTx loads every scheduled interval of one airplane,
// locked for the duration of the transaction.
func airplaneAssignmentsTx(ctx context.Context, tx *sql.Tx, airplaneID uint64) ([]schedule.Assignment, error) {
	const q = `SELECT f.id, f.departure_date, f.arrival_date, a.name
	           FROM flights f
	           JOIN airplanes a ON a.id = f.airplane_id
	           WHERE f.airplane_id = ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, airplaneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.Assignment
	for rows.Next() {
		var as schedule.Assignment
		if err := rows.Scan(&as.FlightID, &as.Departure, &as.Arrival, &as.Label); err != nil {
			return nil, err
		}
		out = append(out, as)
	}
	return out, rows.Err()
}

// crewAssignmentsTx loads every scheduled interval of the requested crew
// members, locked for the duration of the transaction. Returns nil for an
// empty crew list.
func crewAssignmentsTx(ctx context.Context, tx *sql.Tx, crewIDs []uint64) ([]schedule.Assignment, error) {
	if len(crewIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?, ", len(crewIDs))
	placeholders = placeholders[:len(placeholders)-2]
	q := `SELECT f.id, f.departure_date, f.arrival_date, CONCAT(c.first_name, ' ', c.last_name)
	      FROM flight_crew fc
	      JOIN flights f ON f.id = fc.flight_id
	      JOIN crew c ON c.id = fc.crew_id
	      WHERE fc.crew_id IN (` + placeholders + `)
	      FOR UPDATE`
	args := make([]any, len(crewIDs))
	for i, id := range crewIDs {
		args[i] = id
	}
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.Assignment
	for rows.Next() {
		var as schedule.Assignment
		if err := rows.Scan(&as.FlightID, &as.Departure, &as.Arrival, &as.Label); err != nil {
			return nil, err
		}
		out = append(out, as)
	}
	return out, rows.Err()
}

// checkCrewExistTx verifies that every requested crew id resolves to a
// row, so a typo in the crew list fails before the flight is written.
func checkCrewExistTx(ctx context.Context, tx *sql.Tx, crewIDs []uint64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?, ", len(crewIDs))
	placeholders = placeholders[:len(placeholders)-2]
	args := make([]any, len(crewIDs))
	for i, id := range crewIDs {
		args[i] = id
	}
	var count int
	q := `SELECT COUNT(DISTINCT id) FROM crew WHERE id IN (` + placeholders + `)`
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return err
	}
	uniq := make(map[uint64]struct{}, len(crewIDs))
	for _, id := range crewIDs {
		uniq[id] = struct{}{}
	}
	if count != len(uniq) {
		return ErrCrewNotFound
	}
	return nil
}

// replaceCrewTx rewrites the flight_crew rows for one flight with a
// single bulk insert.
func replaceCrewTx(ctx context.Context, tx *sql.Tx, flightID uint64, crewIDs []uint64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crew WHERE flight_id = ?`, flightID); err != nil {
		return err
	}
	if len(crewIDs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO flight_crew (flight_id, crew_id) VALUES `)
	args := make([]any, 0, len(crewIDs)*2)
	for i, id := range crewIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, flightID, id)
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// validateFlightTx runs the scheduling checks for one candidate flight
// inside tx. excludeID is the flight's own id on update (0 for create) so
// its persisted interval is not counted against itself.
func validateFlightTx(ctx context.Context, tx *sql.Tx, f *model.Flight, excludeID uint64) error {
	if err := checkCrewExistTx(ctx, tx, f.CrewIDs); err != nil {
		return err
	}
	airplane, err := airplaneAssignmentsTx(ctx, tx, f.AirplaneID)
	if err != nil {
		return err
	}
	crew, err := crewAssignmentsTx(ctx, tx, f.CrewIDs)
	if err != nil {
		return err
	}
	if v := schedule.CheckFlight(f.DepartureDate, f.ArrivalDate, excludeID, airplane, crew); len(v) > 0 {
		return v
	}
	return nil
}

// Create validates and inserts a new flight with its crew assignments.
// The referenced route and airplane must exist.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	tx, err := r.serializableTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM routes WHERE id = ?`, f.RouteID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRouteNotFound
		}
		return err
	}
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM airplanes WHERE id = ?`, f.AirplaneID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAirplaneNotFound
		}
		return err
	}
	if err := validateFlightTx(ctx, tx, f, 0); err != nil {
		return err
	}

	const q = `INSERT INTO flights (route_id, airplane_id, departure_date, arrival_date)
	           VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, f.RouteID, f.AirplaneID, f.DepartureDate, f.ArrivalDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	if err := replaceCrewTx(ctx, tx, f.ID, f.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update validates and rewrites an existing flight. The flight's own
// persisted interval is excluded from the overlap check so shrinking or
// shifting a schedule never conflicts with itself. When crewProvided is
// false the persisted crew assignments are kept as-is; an explicit empty
// list clears them.
func (r *FlightRepo) Update(ctx context.Context, f *model.Flight, crewProvided bool) error {
	tx, err := r.serializableTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM flights WHERE id = ? FOR UPDATE`, f.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFlightNotFound
		}
		return err
	}
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM routes WHERE id = ?`, f.RouteID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRouteNotFound
		}
		return err
	}
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM airplanes WHERE id = ?`, f.AirplaneID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAirplaneNotFound
		}
		return err
	}

	if !crewProvided {
		// Validate against the persisted crew so moving the interval
		// still checks the members already assigned to the flight.
		ids, err := crewIDsTx(ctx, tx, f.ID)
		if err != nil {
			return err
		}
		f.CrewIDs = ids
	}
	if err := validateFlightTx(ctx, tx, f, f.ID); err != nil {
		return err
	}

	const q = `UPDATE flights
	           SET route_id = ?, airplane_id = ?, departure_date = ?, arrival_date = ?
	           WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, f.RouteID, f.AirplaneID, f.DepartureDate, f.ArrivalDate, f.ID); err != nil {
		return err
	}
	if crewProvided {
		if err := replaceCrewTx(ctx, tx, f.ID, f.CrewIDs); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func crewIDsTx(ctx context.Context, tx *sql.Tx, flightID uint64) ([]uint64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT crew_id FROM flight_crew WHERE flight_id = ? ORDER BY crew_id`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

const flightSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_date, f.arrival_date,
                             CONCAT(src.name, ' - ', dst.name), a.name
                      FROM flights f
                      JOIN routes r ON r.id = f.route_id
                      JOIN airports src ON src.id = r.source_id
                      JOIN airports dst ON dst.id = r.destination_id
                      JOIN airplanes a ON a.id = f.airplane_id`

func scanFlights(rows *sql.Rows) ([]model.Flight, error) {
	defer rows.Close()
	out := make([]model.Flight, 0)
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureDate, &f.ArrivalDate, &f.RouteName, &f.AirplaneName); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID retrieves a flight with its route name, airplane name and the
// ids of the assigned crew.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	var f model.Flight
	err := r.db.QueryRowContext(ctx, flightSelect+` WHERE f.id = ?`, id).Scan(
		&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureDate, &f.ArrivalDate, &f.RouteName, &f.AirplaneName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT crew_id FROM flight_crew WHERE flight_id = ? ORDER BY crew_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	f.CrewIDs = make([]uint64, 0)
	for rows.Next() {
		var cid uint64
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		f.CrewIDs = append(f.CrewIDs, cid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all flights ordered by schedule.
func (r *FlightRepo) List(ctx context.Context) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx, flightSelect+` ORDER BY f.departure_date, f.arrival_date`)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

// ListByAirplane returns one airplane's flights ordered by schedule.
func (r *FlightRepo) ListByAirplane(ctx context.Context, airplaneID uint64) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx, flightSelect+` WHERE f.airplane_id = ? ORDER BY f.departure_date, f.arrival_date`, airplaneID)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

// ListByCrew returns one crew member's flights ordered by schedule; it
// feeds the crew detail view.
func (r *FlightRepo) ListByCrew(ctx context.Context, crewID uint64) ([]model.Flight, error) {
	q := flightSelect + ` JOIN flight_crew fc ON fc.flight_id = f.id
	      WHERE fc.crew_id = ? ORDER BY f.departure_date, f.arrival_date`
	rows, err := r.db.QueryContext(ctx, q, crewID)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

// ListByRoute returns a route's flights ordered by schedule.
func (r *FlightRepo) ListByRoute(ctx context.Context, routeID uint64) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx, flightSelect+` WHERE f.route_id = ? ORDER BY f.departure_date, f.arrival_date`, routeID)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

// Delete removes a flight and its crew assignments unless tickets have
// been sold for it.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
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

	var refs int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE flight_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crew WHERE flight_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFlightNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

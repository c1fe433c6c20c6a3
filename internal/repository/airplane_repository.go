package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

// ErrAirplaneNotFound indicates that an airplane lookup failed.
var ErrAirplaneNotFound = errors.New("airplane not found")

// ErrAirplaneNameTaken is returned on a duplicate airplane name.
var ErrAirplaneNameTaken = errors.New("airplane name already taken")

// AirplaneRepo manages persistence for airplanes. Seat geometry (rows and
// seats per row) is validated on every write because ticket seat bounds
// are checked against it.
type AirplaneRepo struct {
	db *sql.DB
}

// NewAirplaneRepo constructs an AirplaneRepo with the given DB handle.
func NewAirplaneRepo(db *sql.DB) *AirplaneRepo {
	return &AirplaneRepo{db: db}
}

// Create inserts a new airplane after validating its geometry and the
// referenced airplane type.
func (r *AirplaneRepo) Create(ctx context.Context, a *model.Airplane) error {
	if v := schedule.CheckSeatGeometry(a.SeatRows, a.SeatsInRow); len(v) > 0 {
		return v
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT name FROM airplane_types WHERE id = ?`, a.TypeID,
	).Scan(&a.TypeName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAirplaneTypeNotFound
		}
		return err
	}
	const q = `INSERT INTO airplanes (name, seat_rows, seats_in_row, airplane_type_id)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.SeatRows, a.SeatsInRow, a.TypeID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAirplaneNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

const airplaneSelect = `SELECT a.id, a.name, a.seat_rows, a.seats_in_row, a.airplane_type_id, t.name
                        FROM airplanes a
                        JOIN airplane_types t ON t.id = a.airplane_type_id`

// GetByID retrieves an airplane with its type name joined in.
func (r *AirplaneRepo) GetByID(ctx context.Context, id uint64) (*model.Airplane, error) {
	var a model.Airplane
	err := r.db.QueryRowContext(ctx, airplaneSelect+` WHERE a.id = ?`, id).Scan(
		&a.ID, &a.Name, &a.SeatRows, &a.SeatsInRow, &a.TypeID, &a.TypeName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all airplanes ordered by name.
func (r *AirplaneRepo) List(ctx context.Context) ([]model.Airplane, error) {
	rows, err := r.db.QueryContext(ctx, airplaneSelect+` ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Airplane, 0)
	for rows.Next() {
		var a model.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.SeatRows, &a.SeatsInRow, &a.TypeID, &a.TypeName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListByType returns the airplanes of one type; it feeds the airplane
// type detail view.
func (r *AirplaneRepo) ListByType(ctx context.Context, typeID uint64) ([]model.Airplane, error) {
	rows, err := r.db.QueryContext(ctx, airplaneSelect+` WHERE a.airplane_type_id = ? ORDER BY a.name`, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Airplane, 0)
	for rows.Next() {
		var a model.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.SeatRows, &a.SeatsInRow, &a.TypeID, &a.TypeName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update rewrites an airplane, re-validating geometry and the type ref.
func (r *AirplaneRepo) Update(ctx context.Context, a *model.Airplane) error {
	if v := schedule.CheckSeatGeometry(a.SeatRows, a.SeatsInRow); len(v) > 0 {
		return v
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT name FROM airplane_types WHERE id = ?`, a.TypeID,
	).Scan(&a.TypeName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAirplaneTypeNotFound
		}
		return err
	}
	const q = `UPDATE airplanes
	           SET name = ?, seat_rows = ?, seats_in_row = ?, airplane_type_id = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.SeatRows, a.SeatsInRow, a.TypeID, a.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAirplaneNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM airplanes WHERE id = ?`, a.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAirplaneNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an airplane unless flights still reference it.
func (r *AirplaneRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flights WHERE airplane_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM airplanes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirplaneNotFound
	}
	return nil
}

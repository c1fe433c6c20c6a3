package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vllynnyk/airport-service/internal/model"
)

// ErrAirplaneTypeNotFound indicates that an airplane type lookup failed.
var ErrAirplaneTypeNotFound = errors.New("airplane type not found")

// ErrAirplaneTypeNameTaken is returned on a duplicate type name.
var ErrAirplaneTypeNameTaken = errors.New("airplane type name already taken")

// AirplaneTypeRepo manages persistence for airplane types.
type AirplaneTypeRepo struct {
	db *sql.DB
}

// NewAirplaneTypeRepo constructs an AirplaneTypeRepo with the given DB handle.
func NewAirplaneTypeRepo(db *sql.DB) *AirplaneTypeRepo {
	return &AirplaneTypeRepo{db: db}
}

// Create inserts a new airplane type and assigns the generated ID.
func (r *AirplaneTypeRepo) Create(ctx context.Context, t *model.AirplaneType) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO airplane_types (name) VALUES (?)`, t.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAirplaneTypeNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves an airplane type by id.
func (r *AirplaneTypeRepo) GetByID(ctx context.Context, id uint64) (*model.AirplaneType, error) {
	var t model.AirplaneType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM airplane_types WHERE id = ?`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirplaneTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all airplane types ordered by name.
func (r *AirplaneTypeRepo) List(ctx context.Context) ([]model.AirplaneType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM airplane_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AirplaneType, 0)
	for rows.Next() {
		var t model.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update renames an airplane type.
func (r *AirplaneTypeRepo) Update(ctx context.Context, t *model.AirplaneType) error {
	res, err := r.db.ExecContext(ctx, `UPDATE airplane_types SET name = ? WHERE id = ?`, t.Name, t.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAirplaneTypeNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM airplane_types WHERE id = ?`, t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAirplaneTypeNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an airplane type unless airplanes still reference it.
func (r *AirplaneTypeRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM airplanes WHERE airplane_type_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM airplane_types WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirplaneTypeNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vllynnyk/airport-service/internal/model"
)

// ErrAirportNotFound indicates that an airport was not located in the DB.
var ErrAirportNotFound = errors.New("airport not found")

// ErrAirportNameTaken is returned when an insert or update collides with
// the case-insensitive unique index on airports.name_normalized.
var ErrAirportNameTaken = errors.New("airport name already taken")

// AirportRepo manages persistence for airports. Name uniqueness is
// enforced both here (normalized lower-cased column written on every save)
// and by the backing unique index, so "MUC" and "muc" can never coexist.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo constructs an AirportRepo with the given DB handle.
func NewAirportRepo(db *sql.DB) *AirportRepo {
	return &AirportRepo{db: db}
}

// Create inserts a new airport and assigns the generated ID back to the
// struct. The normalized name column is derived from the display name in
// the statement itself so the two can never drift apart.
func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
	a.Name = strings.TrimSpace(a.Name)
	const q = `INSERT INTO airports (name, name_normalized, closest_big_city, country)
	           VALUES (?, LOWER(?), ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Name, a.ClosestBigCity, a.Country)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAirportNameTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	// Query the inserted row back to populate DB-default timestamps.
	const sel = `SELECT created_at, updated_at FROM airports WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByID retrieves an airport by its ID. It returns ErrAirportNotFound
// when no matching row exists.
func (r *AirportRepo) GetByID(ctx context.Context, id uint64) (*model.Airport, error) {
	const q = `SELECT id, name, closest_big_city, country, created_at, updated_at
	           FROM airports WHERE id = ?`
	var a model.Airport
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.ClosestBigCity, &a.Country, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirportNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all airports ordered by name.
func (r *AirportRepo) List(ctx context.Context) ([]model.Airport, error) {
	const q = `SELECT id, name, closest_big_city, country, created_at, updated_at
	           FROM airports ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Airport, 0)
	for rows.Next() {
		var a model.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update rewrites all mutable fields of an airport, keeping the normalized
// name column in sync. Returns ErrAirportNotFound when the row does not
// exist and ErrAirportNameTaken on a case-insensitive name collision.
func (r *AirportRepo) Update(ctx context.Context, a *model.Airport) error {
	a.Name = strings.TrimSpace(a.Name)
	const q = `UPDATE airports
	           SET name = ?, name_normalized = LOWER(?), closest_big_city = ?, country = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Name, a.ClosestBigCity, a.Country, a.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrAirportNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the row is missing or the values are identical; look it up
		// to tell the two apart.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM airports WHERE id = ?`, a.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAirportNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an airport. Airports referenced by routes are protected
// by foreign keys; such deletes surface as ErrConflict.
func (r *AirportRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM routes WHERE source_id = ? OR destination_id = ?`, id, id,
	).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM airports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirportNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vllynnyk/airport-service/internal/model"
)

// ErrCrewNotFound indicates that a crew member lookup failed.
var ErrCrewNotFound = errors.New("crew member not found")

// CrewRepo manages persistence for crew members.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo {
	return &CrewRepo{db: db}
}

// Create inserts a new crew member and assigns the generated ID.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO crew (first_name, last_name) VALUES (?, ?)`, c.FirstName, c.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a crew member by id.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.Crew, error) {
	var c model.Crew
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM crew WHERE id = ?`, id,
	).Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all crew members ordered by last then first name.
func (r *CrewRepo) List(ctx context.Context) ([]model.Crew, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM crew ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Crew, 0)
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites a crew member's names.
func (r *CrewRepo) Update(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE crew SET first_name = ?, last_name = ? WHERE id = ?`, c.FirstName, c.LastName, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM crew WHERE id = ?`, c.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCrewNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a crew member unless flights still reference them.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flight_crew WHERE crew_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM crew WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCrewNotFound
	}
	return nil
}

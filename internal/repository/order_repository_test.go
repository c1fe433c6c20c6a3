package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

func newOrderMock(t *testing.T) (*OrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepo(db), mock
}

func geometryRows(rows, seatsInRow uint32) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"seat_rows", "seats_in_row"}).AddRow(rows, seatsInRow)
}

func TestOrderCreateEmpty(t *testing.T) {
	repo, _ := newOrderMock(t)

	_, err := repo.Create(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderCreateSeatOutOfBounds(t *testing.T) {
	repo, mock := newOrderMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
		WithArgs(uint64(9)).
		WillReturnRows(geometryRows(10, 6))
	mock.ExpectRollback()

	// Row 13 of 10 and seat 9 of 6 must both be reported.
	_, err := repo.Create(context.Background(), 1, []model.TicketSpec{
		{Row: 13, Seat: 9, FlightID: 9},
	})
	var v schedule.Violations
	require.ErrorAs(t, err, &v)
	assert.True(t, v.Has("tickets[0].row"))
	assert.True(t, v.Has("tickets[0].seat"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCreateSeatTakenRollsBackWholeOrder(t *testing.T) {
	repo, mock := newOrderMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
		WithArgs(uint64(9)).
		WillReturnRows(geometryRows(10, 6))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(9), int64(5), uint32(1), uint32(1)).
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(9), int64(5), uint32(2), uint32(2)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '9-2-2'"})
	mock.ExpectRollback()

	// The first ticket inserted fine; the second collides. Nothing may
	// survive, including the first ticket and the order row.
	_, err := repo.Create(context.Background(), 1, []model.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 9},
		{Row: 2, Seat: 2, FlightID: 9},
	})
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCreateAtomicSuccess(t *testing.T) {
	repo, mock := newOrderMock(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
		WithArgs(uint64(9)).
		WillReturnRows(geometryRows(10, 6))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(9), int64(5), uint32(1), uint32(1)).
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint64(9), int64(5), uint32(1), uint32(2)).
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	order, err := repo.Create(context.Background(), 1, []model.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 9},
		{Row: 1, Seat: 2, FlightID: 9},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), order.ID)
	require.Len(t, order.Tickets, 2)
	assert.Equal(t, uint64(100), order.Tickets[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCreateUnknownFlight(t *testing.T) {
	repo, mock := newOrderMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_rows", "seats_in_row"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 1, []model.TicketSpec{{Row: 1, Seat: 1, FlightID: 404}})
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestOrderGetByIDForUserOwnership(t *testing.T) {
	repo, mock := newOrderMock(t)

	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(5, 2, time.Now()))

	_, err := repo.GetByIDForUser(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, errors.Is(err, ErrOrderNotFound))
}

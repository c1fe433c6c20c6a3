package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vllynnyk/airport-service/internal/model"
	"github.com/vllynnyk/airport-service/internal/schedule"
)

func newFlightMock(t *testing.T) (*FlightRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFlightRepo(db), mock
}

func day(hour int) time.Time {
	return time.Date(2025, time.March, 10, hour, 0, 0, 0, time.UTC)
}

func oneRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"1"}).AddRow(1)
}

func assignmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "departure_date", "arrival_date", "name"})
}

func TestFlightCreateAirplaneConflict(t *testing.T) {
	repo, mock := newFlightMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM routes").WithArgs(uint64(1)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT 1 FROM airplanes").WithArgs(uint64(2)).WillReturnRows(oneRow())
	// The airplane already flies 10:00-12:00; the candidate wants 11:00-13:00.
	mock.ExpectQuery("FROM flights f").WithArgs(uint64(2)).
		WillReturnRows(assignmentRows().AddRow(8, day(10), day(12), "Skyliner"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Flight{
		RouteID:       1,
		AirplaneID:    2,
		DepartureDate: day(11),
		ArrivalDate:   day(13),
	})
	var v schedule.Violations
	require.ErrorAs(t, err, &v)
	assert.True(t, v.Has("airplane"))
	assert.False(t, v.Has("crew"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightCreateTouchingIntervalsAllowed(t *testing.T) {
	repo, mock := newFlightMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM routes").WithArgs(uint64(1)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT 1 FROM airplanes").WithArgs(uint64(2)).WillReturnRows(oneRow())
	// Existing 10:00-12:00 flight; the candidate departs exactly at 12:00.
	mock.ExpectQuery("FROM flights f").WithArgs(uint64(2)).
		WillReturnRows(assignmentRows().AddRow(8, day(10), day(12), "Skyliner"))
	mock.ExpectExec("INSERT INTO flights").
		WithArgs(uint64(1), uint64(2), day(12), day(13)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("DELETE FROM flight_crew").WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	f := &model.Flight{RouteID: 1, AirplaneID: 2, DepartureDate: day(12), ArrivalDate: day(13)}
	require.NoError(t, repo.Create(context.Background(), f))
	assert.Equal(t, uint64(9), f.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightCreateCrewConflict(t *testing.T) {
	repo, mock := newFlightMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM routes").WithArgs(uint64(1)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT 1 FROM airplanes").WithArgs(uint64(2)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT COUNT\\(DISTINCT id\\) FROM crew").WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM flights f").WithArgs(uint64(2)).
		WillReturnRows(assignmentRows())
	mock.ExpectQuery("FROM flight_crew fc").WithArgs(uint64(4)).
		WillReturnRows(assignmentRows().AddRow(8, day(10), day(12), "Ada Vern"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Flight{
		RouteID:       1,
		AirplaneID:    2,
		DepartureDate: day(11),
		ArrivalDate:   day(13),
		CrewIDs:       []uint64{4},
	})
	var v schedule.Violations
	require.ErrorAs(t, err, &v)
	assert.True(t, v.Has("crew"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightCreateUnknownCrewMember(t *testing.T) {
	repo, mock := newFlightMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM routes").WithArgs(uint64(1)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT 1 FROM airplanes").WithArgs(uint64(2)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT COUNT\\(DISTINCT id\\) FROM crew").WithArgs(uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Flight{
		RouteID:       1,
		AirplaneID:    2,
		DepartureDate: day(11),
		ArrivalDate:   day(13),
		CrewIDs:       []uint64{4, 5},
	})
	assert.ErrorIs(t, err, ErrCrewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightUpdateExcludesOwnInterval(t *testing.T) {
	repo, mock := newFlightMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM flights").WithArgs(uint64(5)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT 1 FROM routes").WithArgs(uint64(1)).WillReturnRows(oneRow())
	mock.ExpectQuery("SELECT 1 FROM airplanes").WithArgs(uint64(2)).WillReturnRows(oneRow())
	// Crew not provided: the persisted assignments are loaded and kept.
	mock.ExpectQuery("SELECT crew_id FROM flight_crew").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"crew_id"}))
	// The only scheduled interval belongs to the flight being edited, so
	// shifting it an hour later must not conflict with itself.
	mock.ExpectQuery("FROM flights f").WithArgs(uint64(2)).
		WillReturnRows(assignmentRows().AddRow(5, day(10), day(12), "Skyliner"))
	mock.ExpectExec("UPDATE flights").
		WithArgs(uint64(1), uint64(2), day(11), day(13), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &model.Flight{
		ID:            5,
		RouteID:       1,
		AirplaneID:    2,
		DepartureDate: day(11),
		ArrivalDate:   day(13),
	}, false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightDeleteWithTickets(t *testing.T) {
	repo, mock := newFlightMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tickets").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vllynnyk/airport-service/internal/model"
)

func newMock(t *testing.T) (*AirportRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAirportRepo(db), mock
}

func TestAirportCreate(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Now()
	mock.ExpectExec("INSERT INTO airports").
		WithArgs("Munich International", "Munich International", "Munich", "Germany").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM airports").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	a := &model.Airport{Name: "  Munich International ", ClosestBigCity: "Munich", Country: "Germany"}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, uint64(3), a.ID)
	assert.Equal(t, "Munich International", a.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAirportCreateDuplicateName(t *testing.T) {
	repo, mock := newMock(t)

	// The unique index on the normalized name rejects "MUC" after "muc".
	mock.ExpectExec("INSERT INTO airports").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'muc'"})

	err := repo.Create(context.Background(), &model.Airport{Name: "MUC", ClosestBigCity: "Munich", Country: "Germany"})
	assert.ErrorIs(t, err, ErrAirportNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAirportGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name, closest_big_city").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "closest_big_city", "country", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAirportNotFound)
}

func TestAirportDeleteProtectedByRoutes(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM routes").
		WithArgs(uint64(7), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := repo.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateKey(nil))
}

package repository

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eftah/restaurant-service/internal/domain"
)

func weekOfHours() []domain.BusinessHours {
	return []domain.BusinessHours{
		{Weekday: 0, IsClosed: true},
		{Weekday: 1, Open: "09:00", Close: "22:00"},
		{Weekday: 2, Open: "09:00", Close: "22:00"},
	}
}

func TestUpsertHoursCommitsAllRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	for _, h := range weekOfHours() {
		mock.ExpectExec("INSERT INTO business_hours").
			WithArgs(h.Weekday, h.Open, h.Close, h.IsClosed).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	repo := NewSettingsRepository(mock)
	require.NoError(t, repo.UpsertHours(context.Background(), weekOfHours()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertHoursRollsBackOnMidWeekFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hours := weekOfHours()
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO business_hours").
		WithArgs(hours[0].Weekday, hours[0].Open, hours[0].Close, hours[0].IsClosed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO business_hours").
		WithArgs(hours[1].Weekday, hours[1].Open, hours[1].Close, hours[1].IsClosed).
		WillReturnError(boom)
	mock.ExpectRollback()

	repo := NewSettingsRepository(mock)
	err = repo.UpsertHours(context.Background(), hours)
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet(), "rollback, not commit, after a failed upsert")
}

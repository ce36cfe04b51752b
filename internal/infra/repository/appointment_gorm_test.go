package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

func newAppointment() *models.Appointment {
	return &models.Appointment{
		UnitID:     1,
		BarberID:   1,
		ServiceID:  10,
		ClientName: "João",
		StartTime:  time.Date(2026, 9, 10, 17, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 10, 17, 30, 0, 0, time.UTC),
		Status:     "pending",
	}
}

// A checagem com lock precisa selecionar linhas: FOR UPDATE sobre um
// count(*) é rejeitado pelo Postgres e derrubaria todo create.
func TestAppointmentRepo_CreateCheckedLocksRowsNotAggregate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE barber_id = \$1 AND status NOT IN \(\$2,\$3\) AND start_time < \$4 AND end_time > \$5 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	ap := newAppointment()
	require.NoError(t, repo.CreateAppointmentChecked(context.Background(), ap))
	assert.Equal(t, uint(42), ap.ID)
}

func TestAppointmentRepo_CreateCheckedConflictRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE barber_id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "barber_id"}).AddRow(7, 1))
	mock.ExpectRollback()

	err := repo.CreateAppointmentChecked(context.Background(), newAppointment())
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

var cancelNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func newCancelUC(repo *fakeRepo) *CancelUseCase {
	logger := zap.NewNop()
	return NewCancel(repo, audit.NewDispatcher(noopSink{}, logger), logger).
		WithClock(fixedClock(cancelNow))
}

func seedCancellable(repo *fakeRepo, id uint, phone string, start time.Time, createdAt time.Time) {
	repo.appointments = append(repo.appointments, models.Appointment{
		ID: id, UnitID: 1, BarberID: 1, ServiceID: 10,
		ClientName: "João", ClientPhone: phone,
		StartTime: start, EndTime: start.Add(30 * time.Minute),
		Status: string(domain.StatusConfirmed), TotalPrice: 50,
		CreatedAt: createdAt,
	})
}

func TestCancel_ByID(t *testing.T) {
	repo := newFakeRepo()
	repo.barbers = []models.Barber{{ID: 1, UnitID: 1, Name: "Carlos", IsActive: true}}
	repo.services = []models.Service{{ID: 10, UnitID: 1, Name: "Corte", IsActive: true}}
	seedCancellable(repo, 1, "11987654321", cancelNow.Add(2*time.Hour), cancelNow.Add(-time.Hour))

	uc := newCancelUC(repo)
	result, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, AppointmentID: 1, Source: "ui", Reason: "cliente pediu",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), result.Appointment.Status)
	assert.Equal(t, string(domain.StatusCancelled), repo.appointments[0].Status)

	require.Len(t, repo.cancellations, 1)
	rec := repo.cancellations[0]
	assert.Equal(t, "ui", rec.CancellationSource)
	assert.Equal(t, "cliente pediu", rec.Reason)
	assert.Equal(t, 120, rec.MinutesBefore)
	assert.False(t, rec.IsLateCancellation)
	assert.Equal(t, "Carlos", rec.BarberName)
	assert.Equal(t, "Corte", rec.ServiceName)
}

func TestCancel_ByPhonePicksEarliestUpcoming(t *testing.T) {
	repo := newFakeRepo()
	seedCancellable(repo, 1, "11987654321", cancelNow.Add(5*time.Hour), cancelNow.Add(-2*time.Hour))
	seedCancellable(repo, 2, "11987654321", cancelNow.Add(2*time.Hour), cancelNow.Add(-time.Hour))
	seedCancellable(repo, 3, "11987654321", cancelNow.Add(-time.Hour), cancelNow.Add(-3*time.Hour)) // já passou

	uc := newCancelUC(repo)
	result, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, ClientPhone: "11987654321", Source: "bot",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.Appointment.ID)
}

func TestCancel_ByPhoneWithDateWindow(t *testing.T) {
	repo := newFakeRepo()
	// 2026-09-10 local: [03:00Z do dia 10, 02:59:59Z do dia 11].
	seedCancellable(repo, 1, "11987654321",
		time.Date(2026, 9, 10, 17, 0, 0, 0, time.UTC), cancelNow.Add(-time.Hour))
	seedCancellable(repo, 2, "11987654321",
		time.Date(2026, 9, 12, 17, 0, 0, 0, time.UTC), cancelNow.Add(-time.Hour))

	uc := newCancelUC(repo)

	result, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, ClientPhone: "11987654321", Date: "2026-09-12", Source: "bot",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.Appointment.ID)
}

func TestCancel_NothingToCancel(t *testing.T) {
	repo := newFakeRepo()
	uc := newCancelUC(repo)

	_, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, ClientPhone: "11987654321", Source: "bot",
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCancel_TooRecentByPhoneIsRejected(t *testing.T) {
	repo := newFakeRepo()
	// Criado há 2 segundos: dentro da janela de carência.
	seedCancellable(repo, 1, "11987654321", cancelNow.Add(2*time.Hour), cancelNow.Add(-2*time.Second))

	uc := newCancelUC(repo)
	_, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, ClientPhone: "11987654321", Source: "bot",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_too_recent"))
	assert.Equal(t, string(domain.StatusConfirmed), repo.appointments[0].Status)
}

func TestCancel_GracePeriodDoesNotApplyByID(t *testing.T) {
	repo := newFakeRepo()
	seedCancellable(repo, 1, "11987654321", cancelNow.Add(2*time.Hour), cancelNow.Add(-2*time.Second))

	// Por ID a intenção do operador é inequívoca: cancela na hora.
	uc := newCancelUC(repo)
	result, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, AppointmentID: 1, Source: "ui", Reason: "agendado errado",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), result.Appointment.Status)
}

func TestCancel_LateCancellationFlagged(t *testing.T) {
	repo := newFakeRepo()
	seedCancellable(repo, 1, "11987654321", cancelNow.Add(5*time.Minute), cancelNow.Add(-time.Hour))

	uc := newCancelUC(repo)
	result, err := uc.Execute(context.Background(), CancelInput{
		UnitID: 1, AppointmentID: 1, Source: "bot",
	})
	require.NoError(t, err)
	assert.True(t, result.Record.IsLateCancellation)
	assert.Equal(t, 5, result.Record.MinutesBefore)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments = append(repo.appointments, models.Appointment{
		ID: 1, UnitID: 1, Status: string(domain.StatusCompleted),
		StartTime: cancelNow.Add(-time.Hour), CreatedAt: cancelNow.Add(-2 * time.Hour),
	})

	uc := newCancelUC(repo)
	_, err := uc.Execute(context.Background(), CancelInput{UnitID: 1, AppointmentID: 1, Source: "ui"})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

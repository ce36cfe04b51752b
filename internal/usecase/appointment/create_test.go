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
	ucClient "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/client"
)

func newCreateUC(repo *fakeRepo, clients *fakeClientRepo) (*Create, *fakeNotifier) {
	logger := zap.NewNop()
	notifier := &fakeNotifier{}
	uc := NewCreate(
		repo,
		ucClient.NewResolve(clients, logger),
		audit.NewDispatcher(noopSink{}, logger),
		notifier,
		logger,
	)
	return uc, notifier
}

func setupCreateRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.unit.InstanceName = "unidade-centro"
	repo.unit.InstanceAPIKey = "evo-key"
	repo.barbers = []models.Barber{
		{ID: 1, UnitID: 1, Name: "Carlos Souza", IsActive: true},
	}
	repo.services = []models.Service{
		{ID: 10, UnitID: 1, Name: "Corte Masculino", Price: 50, DurationMinutes: 45, IsActive: true},
	}
	return repo
}

func TestCreate_BotResolvesByNameAndNotifies(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	uc, notifier := newCreateUC(repo, clients)

	result, err := uc.Execute(context.Background(), CreateInput{
		UnitID:      1,
		Source:      "bot",
		BarberName:  "carlos",
		ServiceName: "corte",
		ClientName:  "João Silva",
		ClientPhone: "11987654321",
		DateTime:    "2026-09-10T14:00:00",
	})
	require.NoError(t, err)

	ap := result.Appointment
	assert.Equal(t, time.Date(2026, 9, 10, 17, 0, 0, 0, time.UTC), ap.StartTime)
	assert.Equal(t, time.Date(2026, 9, 10, 17, 45, 0, 0, time.UTC), ap.EndTime)
	assert.Equal(t, 50.0, ap.TotalPrice)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, "bot", ap.Source)

	// Cliente novo criado e confirmação disparada com hora local.
	assert.True(t, result.ClientCreated)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "unidade-centro", notifier.sent[0].InstanceName)
	assert.Equal(t, 14, notifier.sent[0].StartLocal.Hour())
}

func TestCreate_UIByIDsDoesNotNotify(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	uc, notifier := newCreateUC(repo, clients)

	result, err := uc.Execute(context.Background(), CreateInput{
		UnitID:      1,
		Source:      "ui",
		BarberID:    1,
		ServiceID:   10,
		ClientName:  "João Silva",
		ClientPhone: "11987654321",
		DateTime:    "2026-09-10T14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "ui", result.Appointment.Source)
	assert.Empty(t, notifier.sent)
}

func TestCreate_Conflict(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	uc, _ := newCreateUC(repo, clients)

	in := CreateInput{
		UnitID:      1,
		Source:      "bot",
		BarberName:  "Carlos",
		ServiceName: "Corte",
		ClientName:  "João Silva",
		ClientPhone: "11987654321",
		DateTime:    "2026-09-10T14:00:00",
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// Mesmo horário, mesmo barbeiro: conflito. O cadastro do cliente da
	// primeira tentativa permanece.
	in.ClientName = "Maria Santos"
	in.ClientPhone = "11911112222"
	_, err = uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	second, findErr := clients.FindByPhone(context.Background(), 1, "11911112222")
	require.NoError(t, findErr)
	require.NotNil(t, second)
	assert.Equal(t, "Maria Santos", second.Name)
}

func TestCreate_AbuttingIsAllowed(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	uc, _ := newCreateUC(repo, clients)

	first, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "ui", BarberID: 1, ServiceID: 10,
		ClientName: "João", DateTime: "2026-09-10T14:00:00",
	})
	require.NoError(t, err)

	// Começa exatamente quando o primeiro termina (14:45 local).
	second, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "ui", BarberID: 1, ServiceID: 10,
		ClientName: "Maria", DateTime: "2026-09-10T14:45:00",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Appointment.EndTime, second.Appointment.StartTime)
}

func TestCreate_UnknownBarberAndService(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	uc, _ := newCreateUC(repo, clients)

	_, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "bot", BarberName: "Zé", ServiceName: "Corte",
		ClientName: "João", DateTime: "2026-09-10T14:00:00",
	})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "bot", BarberName: "Carlos", ServiceName: "Luzes",
		ClientName: "João", DateTime: "2026-09-10T14:00:00",
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreate_InvalidDatetime(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	uc, _ := newCreateUC(repo, clients)

	_, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "bot", BarberName: "Carlos", ServiceName: "Corte",
		ClientName: "João", DateTime: "10/09/2026 14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_datetime"))
}

func TestCreate_ExistingClientIsMergedNotDuplicated(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	clients.clients = []models.Client{{
		ID: 501, UnitID: 1, Name: "João Silva", Phone: "11987654321",
	}}
	uc, _ := newCreateUC(repo, clients)

	result, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "bot", BarberName: "Carlos", ServiceName: "Corte",
		ClientName:      "João Silva",
		ClientPhone:     "11987654321",
		ClientBirthDate: "1990-05-01",
		DateTime:        "2026-09-10T14:00:00",
	})
	require.NoError(t, err)

	assert.False(t, result.ClientCreated)
	assert.Len(t, clients.clients, 1)
	assert.Equal(t, "1990-05-01", clients.clients[0].BirthDate)
	assert.Equal(t, "1990-05-01", result.Appointment.ClientBirthDate)
}

func TestCreate_FormattedPhoneMatchesExistingClient(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	clients.clients = []models.Client{{
		ID: 501, UnitID: 1, Name: "João Silva", Phone: "11987654321",
	}}
	uc, _ := newCreateUC(repo, clients)

	// O painel manda o telefone formatado; a chave continua sendo dígitos.
	result, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "ui", BarberID: 1, ServiceID: 10,
		ClientName:  "João Silva",
		ClientPhone: "(11) 98765-4321",
		DateTime:    "2026-09-10T14:00:00",
	})
	require.NoError(t, err)

	assert.False(t, result.ClientCreated)
	assert.Len(t, clients.clients, 1)
	assert.Equal(t, "11987654321", result.Appointment.ClientPhone)
}

func TestCreate_NoPhoneStillBooks(t *testing.T) {
	repo := setupCreateRepo()
	clients := newFakeClientRepo()
	clients.createErr = assert.AnError
	uc, _ := newCreateUC(repo, clients)

	// Sem telefone o cadastro é melhor esforço: falha não impede agendar.
	result, err := uc.Execute(context.Background(), CreateInput{
		UnitID: 1, Source: "bot", BarberName: "Carlos", ServiceName: "Corte",
		ClientName: "João Silva", DateTime: "2026-09-10T14:00:00",
	})
	require.NoError(t, err)
	assert.False(t, result.ClientCreated)
	assert.NotZero(t, result.Appointment.ID)
}

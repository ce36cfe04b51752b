package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// Janela de consulta em UTC, limites inclusivos (§ dia local convertido).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

type Repository interface {
	// -------- Unit --------
	GetUnitByID(
		ctx context.Context,
		id uint,
	) (*models.Unit, error)

	GetUnitByInstanceName(
		ctx context.Context,
		instanceName string,
	) (*models.Unit, error)

	// -------- Barber --------
	ListActiveBarbers(
		ctx context.Context,
		unitID uint,
		nameFilter string,
	) ([]models.Barber, error)

	FindActiveBarberByName(
		ctx context.Context,
		unitID uint,
		name string,
	) (*models.Barber, error)

	GetBarber(
		ctx context.Context,
		unitID uint,
		barberID uint,
	) (*models.Barber, error)

	// -------- Service --------
	ListActiveServices(
		ctx context.Context,
		unitID uint,
	) ([]models.Service, error)

	FindActiveServiceByName(
		ctx context.Context,
		unitID uint,
		name string,
	) (*models.Service, error)

	GetService(
		ctx context.Context,
		unitID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (read) --------
	// Todos os não cancelados da unidade cujo início cai na janela.
	ListAppointmentsBetween(
		ctx context.Context,
		unitID uint,
		window TimeRange,
	) ([]models.Appointment, error)

	// Não cancelados do barbeiro que sobrepõem [start, end).
	ListBarberConflicts(
		ctx context.Context,
		unitID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		unitID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// Próximo cancelável (pending/confirmed) do telefone: menor start_time,
	// depois menor created_at. window nil = só futuros.
	FindCancellableByPhone(
		ctx context.Context,
		unitID uint,
		phone string,
		window *TimeRange,
		nowUTC time.Time,
	) (*models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		unitID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	// Recheca conflito com lock dentro da mesma transação do insert.
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Cancellation history --------
	RecordCancellation(
		ctx context.Context,
		rec *models.CancellationHistory,
	) error
}

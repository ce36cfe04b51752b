package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/timezone"
)

// Janela em que um agendamento recém-criado não pode ser cancelado pela
// busca por telefone. Evita que a mesma conversa de bot crie e cancele por
// engano em sequência; o cancelamento por ID não passa por ela.
const cancelGracePeriod = 5 * time.Second

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CancelInput struct {
	UnitID uint

	// Caminho do painel: cancelamento direto por ID.
	AppointmentID uint

	// Caminho conversacional: próximo agendamento ativo do telefone,
	// opcionalmente restrito a um dia.
	ClientPhone string
	Date        string

	Source string
	Reason string
}

type CancelResult struct {
	Appointment *models.Appointment
	Record      models.CancellationHistory
}

// ======================================================
// USE CASE
// ======================================================

type CancelUseCase struct {
	repo    domain.Repository
	auditor *audit.Dispatcher
	logger  *zap.Logger
	now     func() time.Time
}

func NewCancel(repo domain.Repository, auditor *audit.Dispatcher, logger *zap.Logger) *CancelUseCase {
	return &CancelUseCase{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *CancelUseCase) WithClock(now func() time.Time) *CancelUseCase {
	uc.now = now
	return uc
}

func (uc *CancelUseCase) Execute(
	ctx context.Context,
	in CancelInput,
) (*CancelResult, error) {

	now := uc.now().UTC()

	ap, err := uc.locate(ctx, in, now)
	if err != nil {
		return nil, err
	}

	if in.AppointmentID == 0 && now.Sub(ap.CreatedAt) < cancelGracePeriod {
		return nil, httperr.ErrConflict("appointment_too_recent")
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	record := domain.NewCancellationRecord(
		ap,
		ap.Barber.Name,
		ap.Service.Name,
		now,
		in.Source,
		in.Reason,
		false,
	)
	if err := uc.repo.RecordCancellation(ctx, &record); err != nil {
		uc.logger.Warn("cancellation history write failed",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}

	uc.auditor.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"source":           in.Source,
			"minutes_before":   record.MinutesBefore,
			"late_cancelation": record.IsLateCancellation,
		},
	})

	return &CancelResult{Appointment: ap, Record: record}, nil
}

func (uc *CancelUseCase) locate(
	ctx context.Context,
	in CancelInput,
	now time.Time,
) (*models.Appointment, error) {

	if in.AppointmentID != 0 {
		return uc.repo.GetAppointment(ctx, in.UnitID, in.AppointmentID)
	}

	if in.ClientPhone == "" {
		return nil, httperr.ErrInvalidInput("client_phone_required")
	}

	var window *domain.TimeRange
	if in.Date != "" {
		unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
		if err != nil {
			return nil, err
		}
		start, end, err := timezone.DayBoundsUTC(in.Date, unit.Timezone)
		if err != nil {
			return nil, err
		}
		window = &domain.TimeRange{Start: start, End: end}
	}

	ap, err := uc.repo.FindCancellableByPhone(ctx, in.UnitID, in.ClientPhone, window, now)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return ap, nil
}

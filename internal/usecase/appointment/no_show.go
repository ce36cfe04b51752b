package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// MarkNoShow registra que o cliente confirmou e não veio. O horário volta a
// ficar livre e a falta entra no histórico de cancelamentos.
type MarkNoShow struct {
	repo    domain.Repository
	auditor *audit.Dispatcher
	logger  *zap.Logger
	now     func() time.Time
}

func NewMarkNoShow(repo domain.Repository, auditor *audit.Dispatcher, logger *zap.Logger) *MarkNoShow {
	return &MarkNoShow{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *MarkNoShow) WithClock(now func() time.Time) *MarkNoShow {
	uc.now = now
	return uc
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	unitID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, unitID, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if err := domain.MarkNoShow(ap, now); err != nil {
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
		"ui",
		"",
		true,
	)
	if err := uc.repo.RecordCancellation(ctx, &record); err != nil {
		uc.logger.Warn("no-show history write failed",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}

	uc.auditor.Dispatch(audit.Event{
		UnitID:   unitID,
		Action:   "appointment_no_show",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

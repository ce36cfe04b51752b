package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
)

// Delete remove o agendamento de vez, uso exclusivo do painel. Registros
// confirmados ou concluídos exigem motivo e deixam rastro no histórico de
// cancelamentos antes da remoção.
type Delete struct {
	repo    domain.Repository
	auditor *audit.Dispatcher
	logger  *zap.Logger
	now     func() time.Time
}

func NewDelete(repo domain.Repository, auditor *audit.Dispatcher, logger *zap.Logger) *Delete {
	return &Delete{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *Delete) WithClock(now func() time.Time) *Delete {
	uc.now = now
	return uc
}

func (uc *Delete) Execute(
	ctx context.Context,
	unitID uint,
	appointmentID uint,
	reason string,
) error {

	ap, err := uc.repo.GetAppointment(ctx, unitID, appointmentID)
	if err != nil {
		return err
	}

	if err := domain.ValidateDeletion(ap, reason); err != nil {
		return err
	}

	if domain.RequiresDeletionReason(domain.Status(ap.Status)) {
		now := uc.now().UTC()
		record := domain.NewCancellationRecord(
			ap,
			ap.Barber.Name,
			ap.Service.Name,
			now,
			"ui",
			reason,
			false,
		)
		if err := uc.repo.RecordCancellation(ctx, &record); err != nil {
			uc.logger.Warn("deletion history write failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
	}

	if err := uc.repo.DeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.auditor.Dispatch(audit.Event{
		UnitID:   unitID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{
			"status": ap.Status,
			"reason": reason,
		},
	})

	return nil
}

package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

type Confirm struct {
	repo    domain.Repository
	auditor *audit.Dispatcher
}

func NewConfirm(repo domain.Repository, auditor *audit.Dispatcher) *Confirm {
	return &Confirm{repo: repo, auditor: auditor}
}

func (uc *Confirm) Execute(
	ctx context.Context,
	unitID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, unitID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.auditor.Dispatch(audit.Event{
		UnitID:   unitID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

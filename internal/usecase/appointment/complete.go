package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	clientdomain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/fidelity"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// Forma de pagamento que debita uma cortesia do ciclo de fidelidade em vez
// de cobrar.
const PaymentMethodCourtesy = "cortesia"

// ======================================================
// INPUT
// ======================================================

type CompleteInput struct {
	UnitID        uint
	AppointmentID uint
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

// Complete encerra o atendimento. Pagamento normal registra a visita e
// dispara a releitura de fidelidade; pagamento em cortesia debita o saldo
// de forma atômica e não participa do ciclo.
type Complete struct {
	repo     domain.Repository
	clients  clientdomain.Repository
	fidelity *fidelity.Checker
	auditor  *audit.Dispatcher
	logger   *zap.Logger
	now      func() time.Time
}

func NewComplete(
	repo domain.Repository,
	clients clientdomain.Repository,
	checker *fidelity.Checker,
	auditor *audit.Dispatcher,
	logger *zap.Logger,
) *Complete {
	return &Complete{
		repo:     repo,
		clients:  clients,
		fidelity: checker,
		auditor:  auditor,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *Complete) WithClock(now func() time.Time) *Complete {
	uc.now = now
	return uc
}

func (uc *Complete) Execute(
	ctx context.Context,
	in CompleteInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.UnitID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	isCourtesy := in.PaymentMethod == PaymentMethodCourtesy

	if isCourtesy {
		if ap.ClientPhone == "" {
			return nil, httperr.ErrInvalidInput("client_phone_required")
		}
		if err := uc.clients.UseCourtesy(ctx, in.UnitID, ap.ClientPhone); err != nil {
			return nil, err
		}
	}

	// Saldo antes da conclusão; a releitura pós-delay compara contra ele.
	courtesiesBefore := 0
	if !isCourtesy && ap.ClientPhone != "" {
		courtesiesBefore, err = uc.clients.CourtesiesByPhone(ctx, in.UnitID, ap.ClientPhone)
		if err != nil {
			uc.logger.Warn("courtesy balance read failed", zap.Error(err))
			courtesiesBefore = 0
		}
	}

	now := uc.now().UTC()
	if err := domain.Complete(ap, now, in.PaymentMethod); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.registerVisit(ctx, ap, now)

	uc.auditor.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"payment_method": in.PaymentMethod,
			"courtesy_used":  isCourtesy,
			"total_price":    ap.TotalPrice,
		},
	})

	if !isCourtesy {
		uc.fidelity.CheckCycleAsync(in.UnitID, ap.ID, ap.ClientPhone, courtesiesBefore)
	}

	return ap, nil
}

func (uc *Complete) registerVisit(
	ctx context.Context,
	ap *models.Appointment,
	now time.Time,
) {
	if ap.ClientPhone == "" {
		return
	}

	client, err := uc.clients.FindByPhone(ctx, ap.UnitID, ap.ClientPhone)
	if err != nil || client == nil {
		return
	}

	if err := uc.clients.RegisterVisit(ctx, client.ID, now); err != nil {
		uc.logger.Warn("visit counter update failed",
			zap.Uint("client_id", client.ID),
			zap.Error(err),
		)
	}
}

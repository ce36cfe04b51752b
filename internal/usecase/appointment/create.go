package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/notify"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/timezone"
	clientuc "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateInput struct {
	UnitID uint

	// "ui" ou "bot"; define o status inicial e o disparo de confirmação.
	Source string

	// O painel envia IDs; o canal conversacional envia nomes.
	BarberID   uint
	BarberName string

	ServiceID   uint
	ServiceName string

	ClientName      string
	ClientPhone     string
	ClientBirthDate string
	Notes           string
	Tags            []string

	// Data/hora no relógio local da unidade.
	DateTime string
}

type CreateResult struct {
	Appointment   *models.Appointment
	Barber        *models.Barber
	Service       *models.Service
	ClientCreated bool
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmationSender interface {
	SendConfirmationAsync(in notify.ConfirmationInput)
}

// Create agenda um horário para qualquer canal. A sequência é fixa:
// resolver unidade, profissional e serviço; normalizar o horário para UTC;
// garantir o cadastro do cliente ANTES da checagem de conflito (um 409 não
// pode perder os dados do cliente); inserir com checagem transacional.
type Create struct {
	repo     domain.Repository
	clients  *clientuc.Resolve
	auditor  *audit.Dispatcher
	notifier ConfirmationSender
	logger   *zap.Logger
}

func NewCreate(
	repo domain.Repository,
	clients *clientuc.Resolve,
	auditor *audit.Dispatcher,
	notifier ConfirmationSender,
	logger *zap.Logger,
) *Create {
	return &Create{
		repo:     repo,
		clients:  clients,
		auditor:  auditor,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*CreateResult, error) {

	if in.ClientName == "" {
		return nil, httperr.ErrInvalidInput("client_name_required")
	}
	if in.DateTime == "" {
		return nil, httperr.ErrInvalidInput("datetime_required")
	}

	// Dígitos em todo lugar que o telefone é persistido ou comparado.
	in.ClientPhone = validators.NormalizePhone(in.ClientPhone)

	unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.resolveBarber(ctx, in)
	if err != nil {
		return nil, err
	}

	service, err := uc.resolveService(ctx, in)
	if err != nil {
		return nil, err
	}

	startUTC, err := timezone.ToUTC(in.DateTime, unit.Timezone)
	if err != nil {
		return nil, err
	}
	endUTC := startUTC.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// Cadastro primeiro: se o horário estiver tomado, o cliente já existe
	// para a próxima tentativa.
	resolved, err := uc.clients.Execute(ctx, clientuc.ResolveInput{
		UnitID:    in.UnitID,
		Name:      in.ClientName,
		Phone:     in.ClientPhone,
		BirthDate: in.ClientBirthDate,
		Notes:     in.Notes,
		Tags:      in.Tags,
	})
	if err != nil {
		return nil, err
	}

	birthDate := in.ClientBirthDate
	if birthDate == "" && resolved.Client != nil {
		birthDate = resolved.Client.BirthDate
	}

	ap := &models.Appointment{
		UnitID:          in.UnitID,
		BarberID:        barber.ID,
		ServiceID:       service.ID,
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		ClientBirthDate: birthDate,
		StartTime:       startUTC,
		EndTime:         endUTC,
		TotalPrice:      service.Price,
		Status:          string(domain.InitialStatus()),
		Source:          in.Source,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	uc.logger.Info("appointment created",
		zap.Uint("unit_id", in.UnitID),
		zap.Uint("appointment_id", ap.ID),
		zap.String("source", in.Source),
		zap.Time("start_time", startUTC),
	)

	uc.auditor.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"client_name": in.ClientName,
			"barber":      barber.Name,
			"service":     service.Name,
			"start_time":  startUTC,
			"source":      in.Source,
		},
	})

	if in.Source == "bot" {
		uc.notifier.SendConfirmationAsync(notify.ConfirmationInput{
			InstanceName: unit.InstanceName,
			APIKey:       unit.InstanceAPIKey,
			Phone:        in.ClientPhone,
			ClientName:   in.ClientName,
			ServiceName:  service.Name,
			BarberName:   barber.Name,
			Price:        service.Price,
			StartLocal:   startUTC.In(timezone.Location(unit.Timezone)),
		})
	}

	return &CreateResult{
		Appointment:   ap,
		Barber:        barber,
		Service:       service,
		ClientCreated: resolved.Created,
	}, nil
}

func (uc *Create) resolveBarber(
	ctx context.Context,
	in CreateInput,
) (*models.Barber, error) {

	if in.BarberID != 0 {
		return uc.repo.GetBarber(ctx, in.UnitID, in.BarberID)
	}
	if in.BarberName == "" {
		return nil, httperr.ErrInvalidInput("professional_required")
	}

	barber, err := uc.repo.FindActiveBarberByName(ctx, in.UnitID, in.BarberName)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	return barber, nil
}

func (uc *Create) resolveService(
	ctx context.Context,
	in CreateInput,
) (*models.Service, error) {

	if in.ServiceID != 0 {
		return uc.repo.GetService(ctx, in.UnitID, in.ServiceID)
	}
	if in.ServiceName == "" {
		return nil, httperr.ErrInvalidInput("service_required")
	}

	service, err := uc.repo.FindActiveServiceByName(ctx, in.UnitID, in.ServiceName)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return service, nil
}

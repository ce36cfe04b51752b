package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/cache"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/dto"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

// BotHandler é o endpoint único do canal conversacional: um POST com um
// campo action que roteia para o caso de uso correspondente. Os nomes de
// ação têm aliases herdados das versões anteriores do bot; os dois nomes
// continuam aceitos para não quebrar fluxos já publicados.
type BotHandler struct {
	repo  domain.Repository
	units *cache.UnitCache

	availability   *ucAppointment.GetAvailability
	checkSlot      *ucAppointment.CheckSlot
	create         *ucAppointment.Create
	cancel         *ucAppointment.CancelUseCase
	checkClient    *ucClient.Check
	registerClient *ucClient.Register
	updateClient   *ucClient.Update

	logger *zap.Logger
}

func NewBotHandler(
	repo domain.Repository,
	units *cache.UnitCache,
	availability *ucAppointment.GetAvailability,
	checkSlot *ucAppointment.CheckSlot,
	create *ucAppointment.Create,
	cancel *ucAppointment.CancelUseCase,
	checkClient *ucClient.Check,
	registerClient *ucClient.Register,
	updateClient *ucClient.Update,
	logger *zap.Logger,
) *BotHandler {
	return &BotHandler{
		repo:           repo,
		units:          units,
		availability:   availability,
		checkSlot:      checkSlot,
		create:         create,
		cancel:         cancel,
		checkClient:    checkClient,
		registerClient: registerClient,
		updateClient:   updateClient,
		logger:         logger,
	}
}

// ======================================================
// DISPATCH
// ======================================================

func (h *BotHandler) Handle(c *gin.Context) {
	var req dto.BotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return
	}

	in := req.Normalize()

	unit, err := h.resolveUnit(c.Request.Context(), &in)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	in.UnitID = unit.ID

	h.logger.Info("bot action",
		zap.String("action", in.Action),
		zap.Uint("unit_id", unit.ID),
	)

	switch in.Action {
	case "check", "check_availability":
		h.handleAvailability(c, in)
	case "check_slot":
		h.handleCheckSlot(c, in)
	case "create", "schedule_appointment":
		h.handleCreate(c, in, unit)
	case "cancel", "cancel_appointment":
		h.handleCancel(c, in)
	case "check_client":
		h.handleCheckClient(c, in)
	case "register_client":
		h.handleRegisterClient(c, in)
	case "update_client":
		h.handleUpdateClient(c, in)
	default:
		httperr.BadRequest(c, "invalid_action", "Ação desconhecida: "+in.Action)
	}
}

// resolveUnit aceita unit_id direto ou instance_name (caminho normal do
// bot, uma instância de WhatsApp por unidade). A resolução por instância
// passa pelo cache.
func (h *BotHandler) resolveUnit(
	ctx context.Context,
	in *dto.BotInput,
) (*models.Unit, error) {

	if in.UnitID != 0 {
		return h.repo.GetUnitByID(ctx, in.UnitID)
	}

	if in.InstanceName == "" {
		return nil, httperr.ErrInvalidInput("unit_required")
	}

	if unit, ok := h.units.Get(ctx, in.InstanceName); ok {
		return unit, nil
	}

	unit, err := h.repo.GetUnitByInstanceName(ctx, in.InstanceName)
	if err != nil {
		return nil, err
	}

	h.units.Set(ctx, in.InstanceName, unit)
	return unit, nil
}

// ======================================================
// ACTIONS
// ======================================================

func (h *BotHandler) handleAvailability(c *gin.Context, in dto.BotInput) {
	if in.DateTime == "" {
		httperr.BadRequest(c, "date_required", "Informe a data desejada.")
		return
	}

	result, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		UnitID:      in.UnitID,
		Date:        in.DateTime,
		StaffFilter: in.Professional,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	fields := gin.H{
		"date":            result.Date,
		"available_slots": result.Slots,
		"services":        result.Services,
	}
	if result.Message != "" {
		fields["message"] = result.Message
	}
	httpresp.Success(c, http.StatusOK, fields)
}

func (h *BotHandler) handleCheckSlot(c *gin.Context, in dto.BotInput) {
	if in.Date == "" || in.Time == "" || in.Professional == "" {
		httperr.BadRequest(c, "missing_params", "Informe data, hora e profissional.")
		return
	}

	result, err := h.checkSlot.Execute(c.Request.Context(), ucAppointment.CheckSlotInput{
		UnitID:          in.UnitID,
		Date:            in.Date,
		Time:            in.Time,
		Professional:    in.Professional,
		DurationMinutes: in.DurationMinutes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{
		"available":       result.Available,
		"professional":    result.Professional,
		"professional_id": result.ProfessionalID,
		"datetime":        result.DateTime,
		"reason":          result.Reason,
		"conflicts":       result.Conflicts,
	})
}

func (h *BotHandler) handleCreate(c *gin.Context, in dto.BotInput, unit *models.Unit) {
	result, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateInput{
		UnitID:          in.UnitID,
		Source:          "bot",
		BarberName:      in.Professional,
		ServiceName:     in.ServiceName,
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		ClientBirthDate: in.BirthDate,
		Notes:           in.Notes,
		Tags:            in.Tags,
		DateTime:        in.DateTime,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	ap := result.Appointment
	httpresp.Success(c, http.StatusCreated, gin.H{
		"message": "Agendamento criado com sucesso",
		"appointment": gin.H{
			"id":           ap.ID,
			"client_name":  ap.ClientName,
			"client_phone": ap.ClientPhone,
			"professional": result.Barber.Name,
			"service":      result.Service.Name,
			"start_time":   ap.StartTime,
			"end_time":     ap.EndTime,
			"price":        ap.TotalPrice,
			"status":       ap.Status,
		},
		"client_created": result.ClientCreated,
	})
}

func (h *BotHandler) handleCancel(c *gin.Context, in dto.BotInput) {
	result, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelInput{
		UnitID:        in.UnitID,
		AppointmentID: in.AppointmentID,
		ClientPhone:   in.ClientPhone,
		Date:          in.DateTime,
		Source:        "bot",
		Reason:        in.Notes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	ap := result.Appointment
	httpresp.Success(c, http.StatusOK, gin.H{
		"message": "Agendamento cancelado com sucesso",
		"cancelled_appointment": gin.H{
			"id":           ap.ID,
			"client_name":  ap.ClientName,
			"professional": result.Record.BarberName,
			"service":      result.Record.ServiceName,
			"start_time":   ap.StartTime,
		},
		"late_cancellation": result.Record.IsLateCancellation,
	})
}

func (h *BotHandler) handleCheckClient(c *gin.Context, in dto.BotInput) {
	result, err := h.checkClient.Execute(c.Request.Context(), in.UnitID, in.ClientPhone)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	fields := gin.H{"found": result.Found}
	if result.Found {
		fields["client"] = result.Client
	}
	httpresp.Success(c, http.StatusOK, fields)
}

func (h *BotHandler) handleRegisterClient(c *gin.Context, in dto.BotInput) {
	client, err := h.registerClient.Execute(c.Request.Context(), ucClient.RegisterInput{
		UnitID:    in.UnitID,
		Name:      in.ClientName,
		Phone:     in.ClientPhone,
		BirthDate: in.BirthDate,
		Notes:     in.Notes,
		Tags:      in.Tags,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Success(c, http.StatusCreated, gin.H{
		"message": "Cliente cadastrado com sucesso",
		"client":  client,
	})
}

func (h *BotHandler) handleUpdateClient(c *gin.Context, in dto.BotInput) {
	result, err := h.updateClient.Execute(c.Request.Context(), ucClient.UpdateInput{
		UnitID:    in.UnitID,
		Phone:     in.ClientPhone,
		Name:      in.NewName,
		NewPhone:  in.NewPhone,
		BirthDate: in.BirthDate,
		Notes:     in.Notes,
		NotesSet:  in.NotesSet,
		Tags:      in.Tags,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Success(c, http.StatusOK, gin.H{
		"message":        "Cliente atualizado com sucesso",
		"client":         result.Client,
		"updated_fields": result.UpdatedFields,
	})
}

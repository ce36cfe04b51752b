package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.Create
	confirm  *ucAppointment.Confirm
	complete *ucAppointment.Complete
	cancel   *ucAppointment.CancelUseCase
	noShow   *ucAppointment.MarkNoShow
	delete   *ucAppointment.Delete
	list     *ucAppointment.List
}

func NewAppointmentHandler(
	create *ucAppointment.Create,
	confirm *ucAppointment.Confirm,
	complete *ucAppointment.Complete,
	cancel *ucAppointment.CancelUseCase,
	noShow *ucAppointment.MarkNoShow,
	deleteUC *ucAppointment.Delete,
	list *ucAppointment.List,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
		noShow:   noShow,
		delete:   deleteUC,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	ClientName      string `json:"client_name" binding:"required"`
	ClientPhone     string `json:"client_phone"`
	ClientBirthDate string `json:"client_birth_date"`

	// Data/hora local da unidade: "2006-01-02T15:04".
	DateTime string `json:"datetime" binding:"required"`
	Notes    string `json:"notes"`
}

type CompleteAppointmentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type DeleteAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateInput{
		UnitID:          unitID,
		Source:          "ui",
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientBirthDate: req.ClientBirthDate,
		Notes:           req.Notes,
		DateTime:        req.DateTime,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, result.Appointment)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	apps, err := h.list.Execute(c.Request.Context(), ucAppointment.ListInput{
		UnitID:   unitID,
		Date:     date,
		BarberID: uint(barberID),
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"appointments": apps,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	in := ucAppointment.ListInput{
		UnitID:   unitID,
		Year:     year,
		Month:    month,
		BarberID: uint(barberID),
	}

	apps, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":       ucAppointment.DescribePeriod(in),
		"year":         year,
		"month":        month,
		"appointments": apps,
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), unitID, id)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Forma de pagamento obrigatória.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), ucAppointment.CompleteInput{
		UnitID:        unitID,
		AppointmentID: id,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelInput{
		UnitID:        unitID,
		AppointmentID: id,
		Source:        "ui",
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Appointment)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), unitID, id)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DeleteAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.delete.Execute(c.Request.Context(), unitID, id, req.Reason); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbersoft-agenda/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler expõe a vitrine da unidade por slug, sem autenticação:
// serviços ativos e horários livres. A criação de agendamento público fica
// fora; agendamento externo entra pelo canal conversacional.
type PublicHandler struct {
	db           *gorm.DB
	availability *ucAppointment.GetAvailability
}

func NewPublicHandler(db *gorm.DB, availability *ucAppointment.GetAvailability) *PublicHandler {
	return &PublicHandler{db: db, availability: availability}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var unit models.Unit
	if err := h.db.Where("slug = ?", slug).First(&unit).Error; err != nil {
		httperr.NotFound(c, "unit_not_found", "Unidade não encontrada.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("unit_id = ? AND is_active = true", unit.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unit": gin.H{
			"id":      unit.ID,
			"name":    unit.Name,
			"slug":    unit.Slug,
			"phone":   unit.Phone,
			"address": unit.Address,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var unit models.Unit
	if err := h.db.Where("slug = ?", slug).First(&unit).Error; err != nil {
		httperr.NotFound(c, "unit_not_found", "Unidade não encontrada.")
		return
	}

	result, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		UnitID:      unit.ID,
		Date:        dateStr,
		StaffFilter: c.Query("professional"),
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            result.Date,
		"available_slots": result.Slots,
		"services":        result.Services,
	})
}

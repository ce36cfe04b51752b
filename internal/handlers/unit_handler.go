package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/cache"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/middleware"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/timezone"
)

type UnitHandler struct {
	db    *gorm.DB
	units *cache.UnitCache
}

func NewUnitHandler(db *gorm.DB, units *cache.UnitCache) *UnitHandler {
	return &UnitHandler{db: db, units: units}
}

type UpdateUnitRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	Timezone    *string `json:"timezone"`
	OpeningHour *int    `json:"opening_hour"`
	ClosingHour *int    `json:"closing_hour"`

	InstanceName   *string `json:"instance_name"`
	InstanceAPIKey *string `json:"instance_api_key"`
}

func (h *UnitHandler) GetMeUnit(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var unit models.Unit
	if err := h.db.First(&unit, unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "unit_not_found", "Unidade não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_unit", "Erro ao buscar dados da unidade.")
		return
	}

	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) UpdateMeUnit(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var unit models.Unit
	if err := h.db.First(&unit, unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "unit_not_found", "Unidade não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_unit", "Erro ao buscar dados da unidade.")
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	oldInstanceName := unit.InstanceName

	if req.Name != nil {
		unit.Name = *req.Name
	}
	if req.Phone != nil {
		unit.Phone = *req.Phone
	}
	if req.Address != nil {
		unit.Address = *req.Address
	}

	if req.Timezone != nil && *req.Timezone != unit.Timezone {
		if !timezone.IsKnown(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone não suportado.")
			return
		}

		// Horários gravados são instantes UTC derivados do timezone da
		// época; trocar a zona com agenda existente corromperia o histórico.
		var count int64
		h.db.Model(&models.Appointment{}).Where("unit_id = ?", unitID).Count(&count)
		if count > 0 {
			httperr.Conflict(c, "timezone_locked", "Timezone não pode ser alterado com agendamentos existentes.")
			return
		}
		unit.Timezone = *req.Timezone
	}

	if req.OpeningHour != nil {
		if *req.OpeningHour < 0 || *req.OpeningHour > 23 {
			httperr.BadRequest(c, "invalid_opening_hour", "Hora de abertura inválida.")
			return
		}
		unit.OpeningHour = *req.OpeningHour
	}
	if req.ClosingHour != nil {
		if *req.ClosingHour < 1 || *req.ClosingHour > 24 {
			httperr.BadRequest(c, "invalid_closing_hour", "Hora de fechamento inválida.")
			return
		}
		unit.ClosingHour = *req.ClosingHour
	}
	if unit.ClosingHour <= unit.OpeningHour {
		httperr.BadRequest(c, "invalid_hours", "Fechamento deve ser depois da abertura.")
		return
	}

	if req.InstanceName != nil {
		unit.InstanceName = *req.InstanceName
	}
	if req.InstanceAPIKey != nil {
		unit.InstanceAPIKey = *req.InstanceAPIKey
	}

	if err := h.db.Save(&unit).Error; err != nil {
		httperr.Internal(c, "failed_to_update_unit", "Erro ao salvar as configurações da unidade.")
		return
	}

	// A resolução instance_name -> unidade fica em cache; qualquer edição
	// invalida as duas chaves possíveis.
	h.units.Invalidate(c.Request.Context(), oldInstanceName)
	h.units.Invalidate(c.Request.Context(), unit.InstanceName)

	c.JSON(http.StatusOK, unit)
}

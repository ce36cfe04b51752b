package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/middleware"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name           string  `json:"name" binding:"required"`
	CommissionRate float64 `json:"commission_rate"`
	CalendarColor  string  `json:"calendar_color"`
}

type UpdateBarberRequest struct {
	Name           *string  `json:"name,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
	CalendarColor  *string  `json:"calendar_color,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	q := h.db.Where("unit_id = ?", unitID)

	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	barber := models.Barber{
		UnitID:         unitID,
		Name:           req.Name,
		IsActive:       true,
		CommissionRate: req.CommissionRate,
		CalendarColor:  req.CalendarColor,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barber"})
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	id := c.Param("id")

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND unit_id = ?", id, unitID).
		First(&barber).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_barber"})
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}
	if req.CommissionRate != nil {
		barber.CommissionRate = *req.CommissionRate
	}
	if req.CalendarColor != nil {
		barber.CalendarColor = *req.CalendarColor
	}

	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_barber"})
		return
	}

	c.JSON(http.StatusOK, barber)
}

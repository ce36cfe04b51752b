package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/middleware"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (PAINEL)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	unitID := c.MustGet(middleware.ContextUnitID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("unit_id = ?", unitID)

	if query != "" {
		like := "%" + query + "%"
		// Busca por telefone compara dígitos contra dígitos.
		phoneLike := "%" + validators.NormalizePhone(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, phoneLike)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	c.JSON(http.StatusOK, clients)
}

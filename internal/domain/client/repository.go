package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// Métodos Find* devolvem (nil, nil) quando não há registro; erro só para
// falha de acesso.
type Repository interface {
	FindByPhone(
		ctx context.Context,
		unitID uint,
		phone string,
	) (*models.Client, error)

	FindByName(
		ctx context.Context,
		unitID uint,
		name string,
		birthDate string,
	) (*models.Client, error)

	Create(
		ctx context.Context,
		c *models.Client,
	) error

	Update(
		ctx context.Context,
		c *models.Client,
	) error

	// RegisterVisit incrementa total_visits e marca last_visit_at.
	RegisterVisit(
		ctx context.Context,
		clientID uint,
		at time.Time,
	) error

	CourtesiesByPhone(
		ctx context.Context,
		unitID uint,
		phone string,
	) (int, error)

	// UseCourtesy debita uma cortesia; erro de negócio quando o saldo é zero.
	UseCourtesy(
		ctx context.Context,
		unitID uint,
		phone string,
	) error
}

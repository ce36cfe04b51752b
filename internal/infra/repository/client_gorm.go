package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	clientdomain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) FindByPhone(
	ctx context.Context,
	unitID uint,
	phone string,
) (*models.Client, error) {

	var c models.Client
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND phone = ?", unitID, phone).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) FindByName(
	ctx context.Context,
	unitID uint,
	name string,
	birthDate string,
) (*models.Client, error) {

	q := r.db.WithContext(ctx).
		Where("unit_id = ? AND LOWER(name) = ?", unitID, strings.ToLower(strings.TrimSpace(name)))

	if birthDate != "" {
		q = q.Where("birth_date = ?", birthDate)
	}

	var c models.Client
	err := q.First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) Update(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientGormRepository) RegisterVisit(
	ctx context.Context,
	clientID uint,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"total_visits":  gorm.Expr("total_visits + 1"),
			"last_visit_at": at,
		}).Error
}

func (r *ClientGormRepository) CourtesiesByPhone(
	ctx context.Context,
	unitID uint,
	phone string,
) (int, error) {

	var c models.Client
	err := r.db.WithContext(ctx).
		Select("available_courtesies").
		Where("unit_id = ? AND phone = ?", unitID, phone).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.AvailableCourtesies, nil
}

// UseCourtesy debita uma cortesia de forma atômica; o WHERE garante que o
// saldo não fica negativo sob concorrência.
func (r *ClientGormRepository) UseCourtesy(
	ctx context.Context,
	unitID uint,
	phone string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("unit_id = ? AND phone = ? AND available_courtesies > 0", unitID, phone).
		Update("available_courtesies", gorm.Expr("available_courtesies - 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("no_courtesies_available")
	}
	return nil
}

// Compile-time check
var _ clientdomain.Repository = (*ClientGormRepository)(nil)

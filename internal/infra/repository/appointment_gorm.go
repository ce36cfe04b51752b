package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// Status que não bloqueiam horário nem participam da constraint de exclusão.
var nonBlockingStatuses = []string{
	string(domain.StatusCancelled),
	string(domain.StatusNoShow),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Unit
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUnitByID(
	ctx context.Context,
	id uint,
) (*models.Unit, error) {

	var unit models.Unit
	if err := r.db.WithContext(ctx).First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("unit_not_found")
		}
		return nil, err
	}
	return &unit, nil
}

func (r *AppointmentGormRepository) GetUnitByInstanceName(
	ctx context.Context,
	instanceName string,
) (*models.Unit, error) {

	var unit models.Unit
	if err := r.db.WithContext(ctx).
		Where("instance_name = ?", instanceName).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("unit_not_found")
		}
		return nil, err
	}
	return &unit, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveBarbers(
	ctx context.Context,
	unitID uint,
	nameFilter string,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = true", unitID)

	if f := strings.TrimSpace(nameFilter); f != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f)+"%")
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *AppointmentGormRepository) FindActiveBarberByName(
	ctx context.Context,
	unitID uint,
	name string,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = true", unitID).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(name))+"%").
		Order("id ASC").
		First(&barber).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	unitID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND unit_id = ?", barberID, unitID).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("barber_not_found")
		}
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	unitID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = true", unitID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) FindActiveServiceByName(
	ctx context.Context,
	unitID uint,
	name string,
) (*models.Service, error) {

	var service models.Service
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND is_active = true", unitID).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(name))+"%").
		Order("id ASC").
		First(&service).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	unitID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND unit_id = ?", serviceID, unitID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	unitID uint,
	window domain.TimeRange,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"unit_id = ? AND status NOT IN ? AND start_time >= ? AND start_time <= ?",
			unitID, nonBlockingStatuses, window.Start, window.End,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBarberConflicts(
	ctx context.Context,
	unitID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"unit_id = ? AND barber_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			unitID, barberID, nonBlockingStatuses, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	unitID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("id = ? AND unit_id = ?", appointmentID, unitID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) FindCancellableByPhone(
	ctx context.Context,
	unitID uint,
	phone string,
	window *domain.TimeRange,
	nowUTC time.Time,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where(
			"unit_id = ? AND client_phone = ? AND status IN ?",
			unitID, phone,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		)

	if window != nil {
		q = q.Where("start_time >= ? AND start_time <= ?", window.Start, window.End)
	} else {
		q = q.Where("start_time >= ?", nowUTC)
	}

	var ap models.Appointment
	err := q.
		Order("start_time ASC").
		Order("created_at ASC").
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	unitID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where(
			"unit_id = ? AND start_time >= ? AND start_time < ?",
			unitID, start, end,
		)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// CreateAppointmentChecked refaz a checagem de conflito com lock dentro da
// transação do insert. A constraint de exclusão do banco continua sendo o
// árbitro final; violação dela chega como 23P01 e vira Conflict.
func (r *AppointmentGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// FOR UPDATE não aceita agregação, então a checagem seleciona as
		// linhas conflitantes em vez de contá-las.
		var held []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID, nonBlockingStatuses, ap.EndTime, ap.StartTime,
			).
			Find(&held).Error; err != nil {
			return err
		}

		if len(held) > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

// --------------------------------------------------
// Cancellation history
// --------------------------------------------------

func (r *AppointmentGormRepository) RecordCancellation(
	ctx context.Context,
	rec *models.CancellationHistory,
) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AvailabilityInput struct {
	UnitID uint
	Date   string

	// Filtro opcional por nome de profissional (substring, sem caixa).
	StaffFilter string
}

type AvailabilityResult struct {
	Date     string           `json:"date"`
	Slots    []domain.Slot    `json:"available_slots"`
	Services []models.Service `json:"services"`

	// Preenchido quando não há barbeiro elegível; não é erro.
	Message string `json:"message,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// WithClock troca o relógio em teste.
func (uc *GetAvailability) WithClock(now func() time.Time) *GetAvailability {
	uc.now = now
	return uc
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	dateOnly := timezone.DateOnly(in.Date)
	result := &AvailabilityResult{Date: in.Date, Slots: []domain.Slot{}}

	barbers, err := uc.repo.ListActiveBarbers(ctx, in.UnitID, in.StaffFilter)
	if err != nil {
		return nil, err
	}

	if len(barbers) == 0 {
		if in.StaffFilter != "" {
			result.Message = fmt.Sprintf("Nenhum barbeiro encontrado com o nome %q", in.StaffFilter)
		} else {
			result.Message = "Nenhum barbeiro ativo encontrado"
		}
		return result, nil
	}

	services, err := uc.repo.ListActiveServices(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}
	result.Services = services

	dayStart, dayEnd, err := timezone.DayBoundsUTC(in.Date, unit.Timezone)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsBetween(
		ctx,
		in.UnitID,
		domain.TimeRange{Start: dayStart, End: dayEnd},
	)
	if err != nil {
		return nil, err
	}

	times := domain.SlotTimes(unit.OpeningHour, unit.ClosingHour)

	nowLocal := uc.now().In(timezone.Location(unit.Timezone))
	if dateOnly == nowLocal.Format("2006-01-02") {
		times = domain.FilterPastSlots(times, nowLocal)
	}

	slotDuration := time.Duration(domain.DefaultSlotDurationMinutes) * time.Minute

	for _, t := range times {
		slotStart, err := timezone.ToUTC(dateOnly+"T"+t+":00", unit.Timezone)
		if err != nil {
			continue
		}
		slotEnd := slotStart.Add(slotDuration)

		for i := range barbers {
			barber := &barbers[i]

			occupied := false
			for j := range appointments {
				ap := &appointments[j]
				if ap.BarberID != barber.ID {
					continue
				}
				if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
					occupied = true
					break
				}
			}

			if !occupied {
				result.Slots = append(result.Slots, domain.Slot{
					Time:       t,
					DateTime:   slotStart,
					BarberID:   barber.ID,
					BarberName: barber.Name,
				})
			}
		}
	}

	return result, nil
}

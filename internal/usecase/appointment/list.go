package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/dto"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ListInput struct {
	UnitID uint

	// "2006-01-02" para um dia, ou Year/Month para a visão mensal.
	Date  string
	Year  int
	Month int

	// Zero lista todos os profissionais.
	BarberID uint
}

// ======================================================
// USE CASE
// ======================================================

// List devolve a agenda do painel por dia ou por mês, sempre recortada no
// relógio local da unidade.
type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

func (uc *List) Execute(
	ctx context.Context,
	in ListInput,
) ([]dto.AppointmentListDTO, error) {

	unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	start, end, err := uc.window(in, unit.Timezone)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointmentsForPeriod(ctx, in.UnitID, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for i := range apps {
		ap := &apps[i]
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			BarberName:  ap.Barber.Name,
			ServiceName: ap.Service.Name,
			TotalPrice:  ap.TotalPrice,
		})
	}
	return out, nil
}

func (uc *List) window(in ListInput, tz string) (time.Time, time.Time, error) {
	if in.Date != "" {
		start, end, err := timezone.DayBoundsUTC(in.Date, tz)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Meio-aberto para a consulta por período.
		return start, end.Add(time.Second), nil
	}

	if in.Year == 0 || in.Month < 1 || in.Month > 12 {
		return time.Time{}, time.Time{}, httperr.ErrInvalidInput("invalid_period")
	}

	loc := timezone.Location(tz)
	start := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, loc).UTC()
	end := time.Date(in.Year, time.Month(in.Month)+1, 1, 0, 0, 0, 0, loc).UTC()
	return start, end, nil
}

// DescribePeriod monta o rótulo exibido no cabeçalho da agenda.
func DescribePeriod(in ListInput) string {
	if in.Date != "" {
		return in.Date
	}
	return fmt.Sprintf("%04d-%02d", in.Year, in.Month)
}

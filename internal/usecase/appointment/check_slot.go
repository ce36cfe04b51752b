package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckSlotInput struct {
	UnitID       uint
	Date         string
	Time         string
	Professional string

	// Zero usa a duração padrão de slot.
	DurationMinutes int
}

type SlotConflict struct {
	Client string    `json:"client"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type CheckSlotResult struct {
	Available      bool           `json:"available"`
	Professional   string         `json:"professional"`
	ProfessionalID uint           `json:"professional_id,omitempty"`
	DateTime       string         `json:"datetime"`
	Reason         string         `json:"reason,omitempty"`
	Conflicts      []SlotConflict `json:"conflicts,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// CheckSlot responde a pergunta pontual do canal conversacional: este
// profissional está livre neste horário? Mesmo teste de sobreposição da
// grade; a palavra final continua sendo a checagem transacional do create.
type CheckSlot struct {
	repo domain.Repository
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

func (uc *CheckSlot) Execute(
	ctx context.Context,
	in CheckSlotInput,
) (*CheckSlotResult, error) {

	unit, err := uc.repo.GetUnitByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	dateOnly := timezone.DateOnly(in.Date)

	// Aceita "14", "14:30" e "14:30:00".
	timeOnly := strings.TrimSpace(in.Time)
	switch strings.Count(timeOnly, ":") {
	case 0:
		timeOnly += ":00:00"
	case 1:
		timeOnly += ":00"
	}
	localDateTime := dateOnly + "T" + timeOnly

	barber, err := uc.repo.FindActiveBarberByName(ctx, in.UnitID, in.Professional)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return &CheckSlotResult{
			Available:    false,
			Professional: in.Professional,
			DateTime:     localDateTime,
			Reason:       fmt.Sprintf("Profissional %q não encontrado ou inativo", in.Professional),
		}, nil
	}

	slotStart, err := timezone.ToUTC(localDateTime, unit.Timezone)
	if err != nil {
		return nil, httperr.ErrInvalidInput("invalid_datetime")
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	slotEnd := slotStart.Add(time.Duration(duration) * time.Minute)

	conflicts, err := uc.repo.ListBarberConflicts(ctx, in.UnitID, barber.ID, slotStart, slotEnd)
	if err != nil {
		return nil, err
	}

	result := &CheckSlotResult{
		Available:      len(conflicts) == 0,
		Professional:   barber.Name,
		ProfessionalID: barber.ID,
		DateTime:       localDateTime,
	}

	if len(conflicts) > 0 {
		result.Reason = fmt.Sprintf("%s já tem agendamento neste horário", barber.Name)
		for i := range conflicts {
			result.Conflicts = append(result.Conflicts, SlotConflict{
				Client: conflicts[i].ClientName,
				Start:  conflicts[i].StartTime,
				End:    conflicts[i].EndTime,
			})
		}
	}

	return result, nil
}

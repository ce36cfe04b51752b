package appointment

import (
	"fmt"
	"time"
)

const (
	// Granularidade fixa da grade de horários.
	SlotGranularityMinutes = 30

	// Duração padrão usada na checagem de slot único quando o serviço
	// não é informado.
	DefaultSlotDurationMinutes = 30

	DefaultOpeningHour = 8
	DefaultClosingHour = 21
)

type Slot struct {
	Time       string    `json:"time"`
	DateTime   time.Time `json:"datetime"`
	BarberID   uint      `json:"barber_id"`
	BarberName string    `json:"barber_name"`
}

// SlotTimes enumera os horários de início "HH:MM" em [opening, closing),
// de 30 em 30 minutos. Horas fora de faixa caem nos defaults.
func SlotTimes(openingHour, closingHour int) []string {
	if openingHour <= 0 || openingHour > 23 {
		openingHour = DefaultOpeningHour
	}
	if closingHour <= openingHour || closingHour > 24 {
		closingHour = DefaultClosingHour
	}

	var times []string
	for hour := openingHour; hour < closingHour; hour++ {
		for minute := 0; minute < 60; minute += SlotGranularityMinutes {
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}

// FilterPastSlots remove horários que já começaram no relógio local da
// unidade. "Já começou" inclui o minuto atual exato: um slot das 14:00
// às 14:00:30 não pode mais ser reservado.
func FilterPastSlots(times []string, nowLocal time.Time) []string {
	cutoff := nowLocal.Hour()*60 + nowLocal.Minute()

	out := times[:0:0]
	for _, t := range times {
		var hour, minute int
		if _, err := fmt.Sscanf(t, "%d:%d", &hour, &minute); err != nil {
			continue
		}
		if hour*60+minute <= cutoff {
			continue
		}
		out = append(out, t)
	}
	return out
}

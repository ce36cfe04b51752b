package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// Cancelamento a menos de 10 minutos do início conta como tardio.
const LateCancellationThreshold = 10 * time.Minute

// NewCancellationRecord monta a linha de auditoria de cancelamento/exclusão.
// minutes_before é negativo quando o cancelamento acontece depois do início.
func NewCancellationRecord(
	ap *models.Appointment,
	barberName string,
	serviceName string,
	now time.Time,
	source string,
	reason string,
	isNoShow bool,
) models.CancellationHistory {

	minutesBefore := int(ap.StartTime.Sub(now).Round(time.Minute) / time.Minute)

	return models.CancellationHistory{
		UnitID:             ap.UnitID,
		AppointmentID:      ap.ID,
		ClientName:         ap.ClientName,
		ClientPhone:        ap.ClientPhone,
		BarberName:         barberName,
		ServiceName:        serviceName,
		ScheduledTime:      ap.StartTime,
		CancelledAt:        now,
		MinutesBefore:      minutesBefore,
		IsLateCancellation: ap.StartTime.Sub(now) < LateCancellationThreshold,
		IsNoShow:           isNoShow,
		TotalPrice:         ap.TotalPrice,
		CancellationSource: source,
		Reason:             reason,
	}
}

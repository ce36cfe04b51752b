package models

import "time"

// Registro append-only: criado sempre que um agendamento confirmado ou
// concluído é cancelado ou excluído.
type CancellationHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UnitID        uint `gorm:"index" json:"unit_id"`
	AppointmentID uint `json:"appointment_id"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`
	BarberName  string `gorm:"size:100" json:"barber_name"`
	ServiceName string `gorm:"size:100" json:"service_name"`

	ScheduledTime time.Time `json:"scheduled_time"`
	CancelledAt   time.Time `json:"cancelled_at"`

	MinutesBefore      int  `json:"minutes_before"`
	IsLateCancellation bool `json:"is_late_cancellation"`
	IsNoShow           bool `json:"is_no_show"`

	TotalPrice         float64 `json:"total_price"`
	CancellationSource string  `gorm:"size:20" json:"cancellation_source"`
	Reason             string  `gorm:"size:500" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

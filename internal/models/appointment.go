package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UnitID uint `gorm:"index" json:"unit_id"`
	Unit   Unit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Snapshot do cliente no momento do agendamento. Não é join: edições
	// posteriores do cadastro não alteram o histórico.
	ClientName      string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone     string `gorm:"size:20;index" json:"client_phone"`
	ClientBirthDate string `gorm:"size:10" json:"client_birth_date"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	TotalPrice float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Source string `gorm:"size:20;default:'ui'" json:"source"`

	Notes         string `gorm:"size:255" json:"notes"`
	PaymentMethod string `gorm:"size:30" json:"payment_method"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

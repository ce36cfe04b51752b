package models

import "time"

type Barber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UnitID uint `gorm:"index" json:"unit_id"`
	Unit   Unit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name           string  `gorm:"size:100;not null" json:"name"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`
	CommissionRate float64 `gorm:"default:0" json:"commission_rate"`
	CalendarColor  string  `gorm:"size:10" json:"calendar_color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

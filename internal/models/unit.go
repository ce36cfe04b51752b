package models

import "time"

type Unit struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone    string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`
	OpeningHour int    `gorm:"default:8" json:"opening_hour"`
	ClosingHour int    `gorm:"default:21" json:"closing_hour"`

	// Identificador da instância no canal de mensagens (Evolution)
	InstanceName   string `gorm:"size:100;index" json:"instance_name"`
	InstanceAPIKey string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

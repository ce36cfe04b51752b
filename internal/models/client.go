package models

import "time"

// Cliente sem login, vinculado à unidade. Chave de negócio: (unit_id, phone).
type Client struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"size:36;uniqueIndex" json:"external_id"`

	UnitID uint `gorm:"index:idx_clients_unit_phone" json:"unit_id"`
	Unit   Unit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20;index:idx_clients_unit_phone" json:"phone"`
	BirthDate string `gorm:"size:10" json:"birth_date"`

	Notes string   `gorm:"size:500" json:"notes"`
	Tags  []string `gorm:"serializer:json" json:"tags"`

	TotalVisits         int        `gorm:"default:0" json:"total_visits"`
	LastVisitAt         *time.Time `json:"last_visit_at"`
	AvailableCourtesies int        `gorm:"default:0" json:"available_courtesies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

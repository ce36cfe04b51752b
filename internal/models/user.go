package models

import "time"

// Usuário com login (dono ou gerente de unidade). Barbeiros agendáveis
// ficam em Barber; User existe para a API privada autenticada.
type User struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UnitID uint `gorm:"index" json:"unit_id"`
	Unit   Unit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

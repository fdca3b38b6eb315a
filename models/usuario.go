package models

import "time"

type Usuario struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;index;not null" json:"agencia"`

	Email    string `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:200;not null" json:"-"` // hash bcrypt
	Nombre   string `gorm:"size:180;not null" json:"nombre"`
	Rol      string `gorm:"size:20;not null;default:OPERADOR" json:"rol"` // ADMIN / OPERADOR
	Activo   bool   `gorm:"not null;default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type TipoPersona string

const (
	PersonaInquilino   TipoPersona = "INQUILINO"
	PersonaPropietario TipoPersona = "PROPIETARIO"
	PersonaGarante     TipoPersona = "GARANTE"
	PersonaOtro        TipoPersona = "OTRO"
)

// Registro de personas (inquilinos, propietarios, garantes).
// Los contratos referencian por id, nunca embeben.
type Persona struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;index;not null" json:"agencia"`

	Tipo      TipoPersona `gorm:"size:15;not null;index" json:"tipo"`
	Nombre    string      `gorm:"size:180;not null" json:"nombre"`
	Documento string      `gorm:"size:30" json:"documento,omitempty"` // DNI / CUIT
	Email     string      `gorm:"size:180" json:"email,omitempty"`
	Telefono  string      `gorm:"size:40" json:"telefono,omitempty"`
	Direccion string      `gorm:"size:255" json:"direccion,omitempty"`
	Notas     string      `gorm:"size:500" json:"notas,omitempty"`

	Activo bool `gorm:"not null;default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

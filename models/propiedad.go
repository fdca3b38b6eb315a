package models

import "time"

type EstadoPropiedad string

const (
	PropiedadDisponible    EstadoPropiedad = "AVAILABLE"
	PropiedadAlquilada     EstadoPropiedad = "RENTED"
	PropiedadMantenimiento EstadoPropiedad = "MAINTENANCE"
)

type Propiedad struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;index;not null" json:"agencia"`

	Codigo    string `gorm:"size:64;not null;index" json:"codigo"`
	Direccion string `gorm:"size:255;not null" json:"direccion"`
	Tipo      string `gorm:"size:40" json:"tipo,omitempty"` // DEPARTAMENTO / CASA / LOCAL / ...
	Ambientes int    `gorm:"not null;default:0" json:"ambientes"`

	// El estado lo cascadea el sincronizador de contratos, no se setea a mano
	// al finalizar un alquiler.
	Estado EstadoPropiedad `gorm:"size:15;not null;default:AVAILABLE;index" json:"estado"`

	PropietarioID     uint  `gorm:"index;not null" json:"propietario_id"`
	InquilinoActualID *uint `gorm:"index" json:"inquilino_actual_id,omitempty"`

	Notas string `gorm:"size:500" json:"notas,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

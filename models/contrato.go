package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type EstadoContrato string

const (
	ContratoBorrador   EstadoContrato = "DRAFT"
	ContratoActivo     EstadoContrato = "ACTIVE"
	ContratoPorVencer  EstadoContrato = "EXPIRING"
	ContratoFinalizado EstadoContrato = "ENDED"
	ContratoRescindido EstadoContrato = "TERMINATED"
)

type TipoMora string

const (
	MoraNinguna    TipoMora = "NONE"
	MoraFija       TipoMora = "FIXED"   // importe fijo por día de atraso
	MoraPorcentaje TipoMora = "PERCENT" // % del importe por día de atraso
)

// AjustesPorcentuales es la lista ordenada de porcentajes, uno por evento de
// ajuste. Se guarda como JSON en una columna de texto.
type AjustesPorcentuales []float64

func (a AjustesPorcentuales) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *AjustesPorcentuales) Scan(v interface{}) error {
	switch x := v.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(x, a)
	case string:
		return json.Unmarshal([]byte(x), a)
	}
	return errors.New("ajustes: tipo de columna no soportado")
}

// Contrato de alquiler. Fechas de inicio/fin guardadas como mediodía UTC
// para que la fecha calendario no se corra por huso horario.
type Contrato struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;index;not null" json:"agencia"`
	Codigo  string `gorm:"size:64;uniqueIndex" json:"codigo"` // CT-AAAA-NNNNNN, derivado del id

	PropiedadID   uint  `gorm:"index;not null" json:"propiedad_id"`
	PropietarioID uint  `gorm:"index;not null" json:"propietario_id"`
	InquilinoID   uint  `gorm:"index;not null" json:"inquilino_id"`
	GaranteID     *uint `gorm:"index" json:"garante_id,omitempty"`

	FechaInicio   time.Time `gorm:"not null" json:"fecha_inicio"`
	FechaFin      time.Time `gorm:"not null;index" json:"fecha_fin"` // inicio + duración en meses
	DuracionMeses int       `gorm:"not null" json:"duracion_meses"`  // >= 1
	ImporteBase   int64     `gorm:"not null" json:"importe_base"`    // alquiler mensual inicial, unidades enteras

	Estado EstadoContrato `gorm:"size:12;not null;default:ACTIVE;index" json:"estado"`

	// Facturación
	DiaPago         int                 `gorm:"not null;default:10" json:"dia_pago"` // 1..28
	Moneda          string              `gorm:"size:3;not null;default:ARS" json:"moneda"`
	AjusteCadaMeses int                 `gorm:"not null;default:0" json:"ajuste_cada_meses"` // 0 = sin ajuste
	Ajustes         AjustesPorcentuales `gorm:"type:text" json:"ajustes"`
	MoraTipo        TipoMora            `gorm:"size:10;not null;default:NONE" json:"mora_tipo"`
	MoraValor       float64             `gorm:"not null;default:0" json:"mora_valor"`

	Notas string `gorm:"size:500" json:"notas,omitempty"`

	RescindidoEn    *time.Time `json:"rescindido_en,omitempty"`
	RescindidoPor   string     `gorm:"size:180" json:"rescindido_por,omitempty"`
	MotivoRescision string     `gorm:"size:255" json:"motivo_rescision,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

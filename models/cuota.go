package models

import "time"

type EstadoCuota string

const (
	CuotaPendiente    EstadoCuota = "PENDING"
	CuotaParcial      EstadoCuota = "PARTIAL"
	CuotaPagada       EstadoCuota = "PAID"
	CuotaVencida      EstadoCuota = "OVERDUE"
	CuotaRefinanciada EstadoCuota = "REFINANCED"
)

// Cuota mensual de un contrato. (agencia, contrato, período) es único: el
// generador nunca debe duplicar un período existente.
type Cuota struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;not null;uniqueIndex:idx_cuota_periodo" json:"agencia"`

	ContratoID uint   `gorm:"not null;uniqueIndex:idx_cuota_periodo;index" json:"contrato_id"`
	Periodo    string `gorm:"size:7;not null;uniqueIndex:idx_cuota_periodo" json:"periodo"` // AAAA-MM

	Vencimiento time.Time `gorm:"not null;index" json:"vencimiento"`
	Importe     int64     `gorm:"not null" json:"importe"` // con ajuste aplicado al generar
	Pagado      int64     `gorm:"not null;default:0" json:"pagado"`

	Estado   EstadoCuota `gorm:"size:12;not null;default:PENDING;index" json:"estado"`
	PagadaEn *time.Time  `json:"pagada_en,omitempty"` // solo cuando queda totalmente paga

	// Mora acumulada: derivada en cada lectura, nunca persistida.
	Mora int64 `gorm:"-" json:"mora"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

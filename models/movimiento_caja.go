package models

import "time"

type TipoMovimiento string

const (
	MovIngreso   TipoMovimiento = "INCOME"
	MovEgreso    TipoMovimiento = "EXPENSE"
	MovComision  TipoMovimiento = "COMMISSION"
	MovRetencion TipoMovimiento = "RETENTION"
	MovAjuste    TipoMovimiento = "ADJUSTMENT"
)

type EstadoMovimiento string

const (
	MovPendiente       EstadoMovimiento = "PENDING"
	MovCobrado         EstadoMovimiento = "COLLECTED"
	MovRetenido        EstadoMovimiento = "RETAINED"
	MovListoTransferir EstadoMovimiento = "READY_TO_TRANSFER"
	MovTransferido     EstadoMovimiento = "TRANSFERRED" // terminal
	MovAnulado         EstadoMovimiento = "VOID"        // terminal
)

type ParteMovimiento string

const (
	ParteAgencia     ParteMovimiento = "AGENCY"
	PartePropietario ParteMovimiento = "OWNER"
	ParteInquilino   ParteMovimiento = "TENANT"
	ParteGarante     ParteMovimiento = "GUARANTOR"
	ParteOtro        ParteMovimiento = "OTHER"
)

// MovimientoCaja: asiento del libro de caja de la agencia. Independiente de
// los contratos pero usualmente vinculado por referencia (nunca embebido).
type MovimientoCaja struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;index;not null" json:"agencia"`

	Tipo    TipoMovimiento   `gorm:"size:12;not null;index" json:"tipo"`
	SubTipo string           `gorm:"size:60" json:"sub_tipo,omitempty"` // "alquiler", "expensas", ...
	Estado  EstadoMovimiento `gorm:"size:20;not null;default:PENDING;index" json:"estado"`

	Importe int64     `gorm:"not null" json:"importe"`
	Moneda  string    `gorm:"size:3;not null;default:ARS" json:"moneda"`
	Fecha   time.Time `gorm:"not null;index" json:"fecha"`

	// A quién se imputa el dinero
	Parte   ParteMovimiento `gorm:"size:10;not null;default:AGENCY" json:"parte"`
	ParteID *uint           `gorm:"index" json:"parte_id,omitempty"`

	// Vínculos opcionales, siempre por id
	ContratoID    *uint `gorm:"index" json:"contrato_id,omitempty"`
	PropiedadID   *uint `gorm:"index" json:"propiedad_id,omitempty"`
	PropietarioID *uint `gorm:"index" json:"propietario_id,omitempty"`
	InquilinoID   *uint `gorm:"index" json:"inquilino_id,omitempty"`
	CuotaID       *uint `gorm:"index" json:"cuota_id,omitempty"`
	PagoID        *uint `gorm:"index" json:"pago_id,omitempty"`

	Notas string `gorm:"size:500" json:"notas,omitempty"`

	TransferidoEn    *time.Time `json:"transferido_en,omitempty"`
	TransferidoPor   string     `gorm:"size:180" json:"transferido_por,omitempty"`
	RefTransferencia string     `gorm:"size:64" json:"ref_transferencia,omitempty"`

	AnuladoEn       *time.Time `json:"anulado_en,omitempty"`
	AnuladoPor      string     `gorm:"size:180" json:"anulado_por,omitempty"`
	MotivoAnulacion string     `gorm:"size:255" json:"motivo_anulacion,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

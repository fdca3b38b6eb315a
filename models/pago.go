package models

import "time"

type EstadoPago string

const (
	PagoOK      EstadoPago = "OK"
	PagoAnulado EstadoPago = "VOID"
)

type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "CASH"
	PagoTransferencia MetodoPago = "TRANSFER"
	PagoTarjeta       MetodoPago = "CARD"
	PagoOtro          MetodoPago = "OTHER"
)

// Pago aplicado contra exactamente una cuota. Nunca se borra: la anulación es
// un soft-delete (estado VOID) que dispara el recálculo de la cuota.
type Pago struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Agencia string `gorm:"size:40;index;not null" json:"agencia"`

	ContratoID uint `gorm:"index;not null" json:"contrato_id"`
	CuotaID    uint `gorm:"index;not null" json:"cuota_id"`

	Fecha      time.Time  `gorm:"not null" json:"fecha"`
	Importe    int64      `gorm:"not null" json:"importe"`
	Metodo     MetodoPago `gorm:"size:10;not null" json:"metodo"`
	Referencia string     `gorm:"size:64" json:"referencia,omitempty"` // recibo
	Notas      string     `gorm:"size:255" json:"notas,omitempty"`

	Estado EstadoPago `gorm:"size:5;not null;default:OK;index" json:"estado"`

	AnuladoEn       *time.Time `json:"anulado_en,omitempty"`
	AnuladoPor      string     `gorm:"size:180" json:"anulado_por,omitempty"`
	MotivoAnulacion string     `gorm:"size:255" json:"motivo_anulacion,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

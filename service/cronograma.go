package service

import (
	"fmt"
	"math"
	"time"
)

const (
	DiaPagoMin = 1
	DiaPagoMax = 28 // nunca 29-31, evita meses cortos
)

// LineaCuota es una cuota generada, todavía sin persistir.
type LineaCuota struct {
	Periodo     string    // AAAA-MM
	Vencimiento time.Time // mediodía UTC
	Importe     int64
}

func ClampDiaPago(d int) int {
	if d < DiaPagoMin {
		return DiaPagoMin
	}
	if d > DiaPagoMax {
		return DiaPagoMax
	}
	return d
}

// GenerarCronograma arma el cronograma completo de cuotas de un contrato:
// una por mes desde el mes de inicio, con vencimiento el día de pago y el
// ajuste porcentual aplicado a partir de cada evento.
//
// ajustes es la lista ordenada de porcentajes, uno por evento de ajuste
// (iteraciones cadaMeses, 2*cadaMeses, ...; la iteración 0 nunca ajusta).
// Si la lista se queda corta, los eventos faltantes ajustan 0%. Los importes
// se redondean a unidades enteras en cada ajuste.
//
// No toca la base: el llamador es responsable de filtrar períodos ya
// existentes antes de insertar (los PAID jamás se recrean ni pisan).
func GenerarCronograma(inicio time.Time, meses int, importeBase int64, cadaMeses int, ajustes []float64, diaPago int) []LineaCuota {
	if meses < 1 || importeBase <= 0 {
		return nil
	}
	diaPago = ClampDiaPago(diaPago)

	anio, mes, _ := inicio.UTC().Date()
	importe := importeBase
	evento := 0

	lineas := make([]LineaCuota, 0, meses)
	for i := 0; i < meses; i++ {
		if cadaMeses > 0 && i > 0 && i%cadaMeses == 0 {
			pct := 0.0
			if evento < len(ajustes) {
				pct = ajustes[evento]
			}
			evento++
			importe = int64(math.Round(float64(importe) * (1 + pct/100)))
		}

		// time.Date normaliza mes+i más allá de diciembre
		mesCuota := time.Date(anio, mes+time.Month(i), 1, 12, 0, 0, 0, time.UTC)
		lineas = append(lineas, LineaCuota{
			Periodo:     fmt.Sprintf("%04d-%02d", mesCuota.Year(), int(mesCuota.Month())),
			Vencimiento: time.Date(mesCuota.Year(), mesCuota.Month(), diaPago, 12, 0, 0, 0, time.UTC),
			Importe:     importe,
		})
	}
	return lineas
}

// RepetirAjuste expande un porcentaje plano en la lista por evento que espera
// GenerarCronograma (un mismo % en cada ajuste).
func RepetirAjuste(pct float64, meses, cadaMeses int) []float64 {
	if cadaMeses <= 0 || meses <= cadaMeses {
		return nil
	}
	n := (meses - 1) / cadaMeses
	out := make([]float64, n)
	for i := range out {
		out[i] = pct
	}
	return out
}

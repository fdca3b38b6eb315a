package service

import (
	"math"
	"time"

	"github.com/avidela47/SS-BienesRaices-sub000/models"
)

// CalcularMora devuelve el recargo acumulado de una cuota a la fecha dada.
// Se calcula fresco en cada lectura, nunca se persiste: cambiar la política
// del contrato cambia retroactivamente lo que se muestra.
//
// Día de vencimiento sin recargo: la mora corre recién desde el día siguiente.
// FIXED acumula un importe fijo por día; PERCENT acumula % simple del importe
// por día (no compuesto).
func CalcularMora(importe int64, vencimiento time.Time, tipo models.TipoMora, valor float64, estado models.EstadoCuota, hoy time.Time) int64 {
	if tipo == models.MoraNinguna || estado == models.CuotaPagada {
		return 0
	}
	dias := DiasEntre(vencimiento, hoy)
	if dias <= 0 {
		return 0
	}
	switch tipo {
	case models.MoraFija:
		return int64(math.Round(valor * float64(dias)))
	case models.MoraPorcentaje:
		return int64(math.Round(float64(importe) * (valor / 100) * float64(dias)))
	}
	return 0
}

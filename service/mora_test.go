package service

import (
	"testing"
	"time"

	"github.com/avidela47/SS-BienesRaices-sub000/models"

	"github.com/stretchr/testify/assert"
)

func TestCalcularMoraDiaDeVencimientoSinRecargo(t *testing.T) {
	venc := fecha(2025, time.March, 10)

	// el mismo día de vencimiento no acumula, aunque la hora difiera
	hoy := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	assert.Zero(t, CalcularMora(100000, venc, models.MoraPorcentaje, 1, models.CuotaPendiente, hoy))

	// antes del vencimiento tampoco
	assert.Zero(t, CalcularMora(100000, venc, models.MoraPorcentaje, 1, models.CuotaPendiente, fecha(2025, time.March, 1)))
}

func TestCalcularMoraPorcentajeSimple(t *testing.T) {
	venc := fecha(2025, time.March, 10)

	// 1 día de atraso: round(100000 * 0.01 * 1) = 1000
	assert.Equal(t, int64(1000),
		CalcularMora(100000, venc, models.MoraPorcentaje, 1, models.CuotaPendiente, fecha(2025, time.March, 11)))

	// acumulación simple, no compuesta: 10 días -> 10000 (no 100000*(1.01^10 - 1))
	assert.Equal(t, int64(10000),
		CalcularMora(100000, venc, models.MoraPorcentaje, 1, models.CuotaPendiente, fecha(2025, time.March, 20)))
}

func TestCalcularMoraFija(t *testing.T) {
	venc := fecha(2025, time.March, 10)

	assert.Equal(t, int64(500),
		CalcularMora(100000, venc, models.MoraFija, 500, models.CuotaPendiente, fecha(2025, time.March, 11)))
	assert.Equal(t, int64(3500),
		CalcularMora(100000, venc, models.MoraFija, 500, models.CuotaParcial, fecha(2025, time.March, 17)))
}

func TestCalcularMoraCasosSinRecargo(t *testing.T) {
	venc := fecha(2025, time.March, 10)
	hoy := fecha(2025, time.April, 10)

	// sin política
	assert.Zero(t, CalcularMora(100000, venc, models.MoraNinguna, 5, models.CuotaPendiente, hoy))
	// cuota ya paga
	assert.Zero(t, CalcularMora(100000, venc, models.MoraPorcentaje, 5, models.CuotaPagada, hoy))
}

func TestCalcularMoraRedondeo(t *testing.T) {
	venc := fecha(2025, time.March, 10)

	// 0.5% de 33333 por 1 día = 166.665 -> 167
	assert.Equal(t, int64(167),
		CalcularMora(33333, venc, models.MoraPorcentaje, 0.5, models.CuotaPendiente, fecha(2025, time.March, 11)))
}

func TestFechasCanonicas(t *testing.T) {
	bsas := time.FixedZone("-03", -3*60*60)
	local := time.Date(2025, time.June, 30, 22, 15, 0, 0, bsas) // 01:15 UTC del 1/7

	n := MediodiaUTC(local)
	assert.Equal(t, time.July, n.Month())
	assert.Equal(t, 1, n.Day())
	assert.True(t, EsMediodiaUTC(n))
	assert.False(t, EsMediodiaUTC(local))

	assert.Equal(t, 3, DiasEntre(fecha(2025, time.March, 10), fecha(2025, time.March, 13)))
	assert.Equal(t, 0, DiasEntre(fecha(2025, time.March, 10), time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)))
}

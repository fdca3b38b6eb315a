package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contratoConCuota arma un contrato activo de una sola cuota de 1000.
func contratoConCuota(t *testing.T, r *gin.Engine, token string) (ctID uint, cuota models.Cuota) {
	t.Helper()
	propID, duenoID, inqID := seedContratoBase(t)

	ctID = crearContratoHTTP(t, r, token, map[string]interface{}{
		"propiedad_id":   propID,
		"propietario_id": duenoID,
		"inquilino_id":   inqID,
		"fecha_inicio":   "2025-01-01",
		"duracion_meses": 1,
		"importe_base":   1000,
	})
	require.NoError(t, config.DB.Where("contrato_id = ?", ctID).First(&cuota).Error)
	return ctID, cuota
}

func TestPagoParcialYCompleto(t *testing.T) {
	r, token := setupTest(t)
	_, cuota := contratoConCuota(t, r, token)

	// 600 de 1000 -> PARTIAL
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 600, "metodo": "CASH"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&cuota, cuota.ID).Error)
	assert.Equal(t, models.CuotaParcial, cuota.Estado)
	assert.Equal(t, int64(600), cuota.Pagado)
	assert.Nil(t, cuota.PagadaEn)

	// los otros 400 -> PAID con pagada_en seteada
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 400, "metodo": "TRANSFER", "fecha": "2025-01-20"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&cuota, cuota.ID).Error)
	assert.Equal(t, models.CuotaPagada, cuota.Estado)
	assert.Equal(t, int64(1000), cuota.Pagado)
	require.NotNil(t, cuota.PagadaEn)
	assert.Equal(t, 20, cuota.PagadaEn.Day())

	// al pago sin referencia se le genera recibo
	var pagos []models.Pago
	require.NoError(t, config.DB.Where("cuota_id = ?", cuota.ID).Order("id ASC").Find(&pagos).Error)
	require.Len(t, pagos, 2)
	assert.Contains(t, pagos[0].Referencia, "RC-")
}

func TestPagoValidacion(t *testing.T) {
	r, token := setupTest(t)
	_, cuota := contratoConCuota(t, r, token)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": -5, "metodo": "CASH"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 100, "metodo": "CHEQUE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cuotas/99999/pagos", token,
		map[string]interface{}{"importe": 100, "metodo": "CASH"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnularPagoRecalculaYCascadea(t *testing.T) {
	r, token := setupTest(t)
	_, cuota := contratoConCuota(t, r, token)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 600, "metodo": "CASH"})
	require.Equal(t, http.StatusCreated, w.Code)

	// el segundo pago queda asentado también en caja
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 400, "metodo": "TRANSFER", "registrar_en_caja": true})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, config.DB.First(&cuota, cuota.ID).Error)
	require.Equal(t, models.CuotaPagada, cuota.Estado)

	var pagoCaja models.Pago
	require.NoError(t, config.DB.Where("cuota_id = ? AND metodo = ?", cuota.ID, models.PagoTransferencia).
		First(&pagoCaja).Error)
	var mov models.MovimientoCaja
	require.NoError(t, config.DB.Where("pago_id = ?", pagoCaja.ID).First(&mov).Error)
	require.Equal(t, models.MovCobrado, mov.Estado)

	// anular el pago de 400: la cuota colapsa a PENDING (no PARTIAL)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pagos/%d/anular", pagoCaja.ID), token,
		map[string]interface{}{"motivo": "transferencia rebotada"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// recarga sobre un struct limpio: gorm no pisa punteros con NULL al re-escanear
	cuotaID := cuota.ID
	cuota = models.Cuota{}
	require.NoError(t, config.DB.First(&cuota, cuotaID).Error)
	assert.Equal(t, models.CuotaPendiente, cuota.Estado)
	assert.Equal(t, int64(600), cuota.Pagado)
	assert.Nil(t, cuota.PagadaEn)

	require.NoError(t, config.DB.First(&pagoCaja, pagoCaja.ID).Error)
	assert.Equal(t, models.PagoAnulado, pagoCaja.Estado)
	assert.NotNil(t, pagoCaja.AnuladoEn)

	// cascada al movimiento de caja vinculado
	require.NoError(t, config.DB.First(&mov, mov.ID).Error)
	assert.Equal(t, models.MovAnulado, mov.Estado)
}

func TestAnularPagoIdempotente(t *testing.T) {
	r, token := setupTest(t)
	_, cuota := contratoConCuota(t, r, token)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 1000, "metodo": "CASH", "registrar_en_caja": true})
	require.Equal(t, http.StatusCreated, w.Code)

	var pago models.Pago
	require.NoError(t, config.DB.Where("cuota_id = ?", cuota.ID).First(&pago).Error)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pagos/%d/anular", pago.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	primera := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), primera["movimientos_anulados"])

	// segunda anulación: éxito no-op, sin doble cascada
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pagos/%d/anular", pago.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	segunda := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), segunda["movimientos_anulados"])

	require.NoError(t, config.DB.First(&cuota, cuota.ID).Error)
	assert.Equal(t, models.CuotaPendiente, cuota.Estado)
	assert.Equal(t, int64(0), cuota.Pagado)

	w = doJSON(t, r, http.MethodPost, "/api/pagos/99999/anular", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnularUnPagoDeDosMantienePagada(t *testing.T) {
	r, token := setupTest(t)
	_, cuota := contratoConCuota(t, r, token)

	// sobrepago: 1000 + 600; anular el de 600 deja la cuota paga igual
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 1000, "metodo": "CASH", "fecha": "2025-01-12"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/cuotas/%d/pagos", cuota.ID), token,
		map[string]interface{}{"importe": 600, "metodo": "CASH", "fecha": "2025-01-15"})
	require.Equal(t, http.StatusCreated, w.Code)

	var extra models.Pago
	require.NoError(t, config.DB.Where("cuota_id = ? AND importe = 600", cuota.ID).First(&extra).Error)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/pagos/%d/anular", extra.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&cuota, cuota.ID).Error)
	assert.Equal(t, models.CuotaPagada, cuota.Estado)
	assert.Equal(t, int64(1000), cuota.Pagado)
	require.NotNil(t, cuota.PagadaEn)
	// pagada_en queda en la fecha del pago OK que sobrevive
	assert.Equal(t, 12, cuota.PagadaEn.Day())
}

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

func crearMovimientoHTTP(t *testing.T, r *gin.Engine, token string, in map[string]interface{}) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/caja/", token, in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func estadoMovimiento(t *testing.T, id uint) models.EstadoMovimiento {
	t.Helper()
	var m models.MovimientoCaja
	require.NoError(t, config.DB.First(&m, id).Error)
	return m.Estado
}

func TestMovimientoCicloCompleto(t *testing.T) {
	r, token := setupTest(t)

	id := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo":     "INCOME",
		"sub_tipo": "alquiler",
		"importe":  50000,
		"parte":    "OWNER",
	})
	assert.Equal(t, models.MovPendiente, estadoMovimiento(t, id))

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.MovCobrado, estadoMovimiento(t, id))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/liberar", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MovListoTransferir, estadoMovimiento(t, id))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/transferir", id), token,
		map[string]interface{}{"referencia": "TR-0001"})
	require.Equal(t, http.StatusOK, w.Code)

	var m models.MovimientoCaja
	require.NoError(t, config.DB.First(&m, id).Error)
	assert.Equal(t, models.MovTransferido, m.Estado)
	assert.Equal(t, "TR-0001", m.RefTransferencia)
	assert.NotNil(t, m.TransferidoEn)

	// reintento del transfer: éxito sin re-mutar la referencia
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/transferir", id), token,
		map[string]interface{}{"referencia": "TR-9999"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, config.DB.First(&m, id).Error)
	assert.Equal(t, "TR-0001", m.RefTransferencia)
}

func TestMovimientoTransicionesInvalidas(t *testing.T) {
	r, token := setupTest(t)

	id := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "COMMISSION", "importe": 8000,
	})

	// PENDING no se transfiere directo
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/transferir", id), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// tampoco se libera sin cobrar
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/liberar", id), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// cobrar dos veces
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", id), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/caja/99999/cobrar", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMovimientoRetenido(t *testing.T) {
	r, token := setupTest(t)

	id := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "RETENTION", "sub_tipo": "deposito", "importe": 120000,
	})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", id), token,
		map[string]interface{}{"retener": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MovRetenido, estadoMovimiento(t, id))

	// RETAINED también libera
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/liberar", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MovListoTransferir, estadoMovimiento(t, id))
}

func TestAnularMovimiento(t *testing.T) {
	r, token := setupTest(t)

	id := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "EXPENSE", "sub_tipo": "reparacion", "importe": 30000,
	})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/anular", id), token,
		map[string]interface{}{"motivo": "cargado dos veces"})
	require.Equal(t, http.StatusOK, w.Code)

	var m models.MovimientoCaja
	require.NoError(t, config.DB.First(&m, id).Error)
	assert.Equal(t, models.MovAnulado, m.Estado)
	assert.Equal(t, "cargado dos veces", m.MotivoAnulacion)
	assert.NotNil(t, m.AnuladoEn)

	// segunda anulación: no-op con éxito, conserva el motivo original
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/anular", id), token,
		map[string]interface{}{"motivo": "otro motivo"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, config.DB.First(&m, id).Error)
	assert.Equal(t, "cargado dos veces", m.MotivoAnulacion)
}

func TestAnularTransferidoRechazado(t *testing.T) {
	r, token := setupTest(t)

	id := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "INCOME", "importe": 10000,
	})
	for _, paso := range []string{"cobrar", "liberar", "transferir"} {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/%s", id, paso), token, nil)
		require.Equal(t, http.StatusOK, w.Code, paso)
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/anular", id), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.MovTransferido, estadoMovimiento(t, id))
}

func TestCrearMovimientoValidacion(t *testing.T) {
	r, token := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/caja/", token,
		map[string]interface{}{"tipo": "INCOME", "importe": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/caja/", token,
		map[string]interface{}{"tipo": "PRESTAMO", "importe": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/caja/", token,
		map[string]interface{}{"tipo": "INCOME", "importe": 100, "parte": "BANCO"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// vínculo a contrato inexistente
	w = doJSON(t, r, http.MethodPost, "/api/caja/", token,
		map[string]interface{}{"tipo": "INCOME", "importe": 100, "contrato_id": 777})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumenCaja(t *testing.T) {
	r, token := setupTest(t)

	// cobrado 10000 + retenido 5000 cuentan; egreso cobrado y pendiente no
	cobrado := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "INCOME", "importe": 10000,
	})
	retenido := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "INCOME", "importe": 5000,
	})
	egreso := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "EXPENSE", "importe": 3000,
	})
	crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "COMMISSION", "importe": 9999,
	})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", cobrado), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", retenido), token,
		map[string]interface{}{"retener": true})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/caja/%d/cobrar", egreso), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/caja/resumen", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})

	assert.Equal(t, float64(15000), data["efectivo_en_mano"])

	porTipo := map[string]float64{}
	for _, fila := range data["por_tipo"].([]interface{}) {
		f := fila.(map[string]interface{})
		porTipo[f["clave"].(string)] = f["importe"].(float64)
	}
	assert.Equal(t, float64(15000), porTipo["INCOME"])
	assert.Equal(t, float64(3000), porTipo["EXPENSE"])
	assert.Equal(t, float64(9999), porTipo["COMMISSION"])

	porEstado := map[string]float64{}
	for _, fila := range data["por_estado"].([]interface{}) {
		f := fila.(map[string]interface{})
		porEstado[f["clave"].(string)] = f["cantidad"].(float64)
	}
	assert.Equal(t, float64(3), porEstado["COLLECTED"]+porEstado["RETAINED"])
	assert.Equal(t, float64(1), porEstado["PENDING"])
}

func TestListarMovimientosFiltros(t *testing.T) {
	r, token := setupTest(t)

	a := crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "INCOME", "importe": 100, "fecha": "2025-03-01",
	})
	crearMovimientoHTTP(t, r, token, map[string]interface{}{
		"tipo": "EXPENSE", "importe": 200, "fecha": "2025-03-15",
	})

	w := doJSON(t, r, http.MethodGet, "/api/caja/?tipo=INCOME", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, float64(a), rows[0].(map[string]interface{})["id"])

	w = doJSON(t, r, http.MethodGet, "/api/caja/?desde=2025-03-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows = decodeBody(t, w)["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "EXPENSE", rows[0].(map[string]interface{})["tipo"])
}

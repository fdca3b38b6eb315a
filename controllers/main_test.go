package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/routes"
	"github.com/avidela47/SS-BienesRaices-sub000/service"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const agenciaTest = "sub000"

var dbSeq atomic.Int64

// setupTest levanta una base sqlite en memoria propia del test y un router
// completo con las rutas reales; devuelve también un token válido.
func setupTest(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Usuario{},
		&models.Persona{},
		&models.Propiedad{},
		&models.Contrato{},
		&models.Cuota{},
		&models.Pago{},
		&models.MovimientoCaja{},
	))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)

	token, err := utils.GenerateToken(1, "Tester", "ADMIN", agenciaTest)
	require.NoError(t, err)

	return r, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// seedContratoBase crea propietario + inquilino + propiedad directamente en
// la base y devuelve sus ids.
func seedContratoBase(t *testing.T) (propiedadID, propietarioID, inquilinoID uint) {
	t.Helper()

	dueno := models.Persona{Agencia: agenciaTest, Tipo: models.PersonaPropietario, Nombre: "Carlos Dueño", Activo: true}
	require.NoError(t, config.DB.Create(&dueno).Error)
	inq := models.Persona{Agencia: agenciaTest, Tipo: models.PersonaInquilino, Nombre: "Ana Inquilina", Activo: true}
	require.NoError(t, config.DB.Create(&inq).Error)

	prop := models.Propiedad{
		Agencia:       agenciaTest,
		Codigo:        fmt.Sprintf("PROP-%d", dbSeq.Add(1)),
		Direccion:     "Av. Siempre Viva 742",
		Estado:        models.PropiedadDisponible,
		PropietarioID: dueno.ID,
	}
	require.NoError(t, config.DB.Create(&prop).Error)

	return prop.ID, dueno.ID, inq.ID
}

// crearContratoHTTP crea un contrato por la API y devuelve su id.
func crearContratoHTTP(t *testing.T, r *gin.Engine, token string, in map[string]interface{}) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/contratos/", token, in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func hoySoloFecha() time.Time {
	return service.HoyFecha()
}

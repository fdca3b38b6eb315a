package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/service"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func tipoMovimientoValido(t models.TipoMovimiento) bool {
	switch t {
	case models.MovIngreso, models.MovEgreso, models.MovComision, models.MovRetencion, models.MovAjuste:
		return true
	}
	return false
}

func parteMovimientoValida(p models.ParteMovimiento) bool {
	switch p {
	case models.ParteAgencia, models.PartePropietario, models.ParteInquilino, models.ParteGarante, models.ParteOtro:
		return true
	}
	return false
}

type CrearMovimientoInput struct {
	Tipo    string `json:"tipo" binding:"required"`
	SubTipo string `json:"sub_tipo"`
	Importe int64  `json:"importe" binding:"required"`
	Moneda  string `json:"moneda"`
	Fecha   string `json:"fecha"` // AAAA-MM-DD, default hoy

	Parte   string `json:"parte"`
	ParteID *uint  `json:"parte_id"`

	ContratoID    *uint `json:"contrato_id"`
	PropiedadID   *uint `json:"propiedad_id"`
	PropietarioID *uint `json:"propietario_id"`
	InquilinoID   *uint `json:"inquilino_id"`
	CuotaID       *uint `json:"cuota_id"`
	PagoID        *uint `json:"pago_id"`

	Notas string `json:"notas"`
}

// POST /caja — asiento manual de oficina, nace PENDING
func CrearMovimiento(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var in CrearMovimientoInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Importe <= 0 {
		utils.Error(c, http.StatusBadRequest, "payload inválido: tipo e importe positivo requeridos", nil)
		return
	}
	if !tipoMovimientoValido(models.TipoMovimiento(in.Tipo)) {
		utils.Error(c, http.StatusBadRequest, "tipo inválido (INCOME/EXPENSE/COMMISSION/RETENTION/ADJUSTMENT)", nil)
		return
	}
	parte := models.ParteMovimiento(in.Parte)
	if in.Parte == "" {
		parte = models.ParteAgencia
	}
	if !parteMovimientoValida(parte) {
		utils.Error(c, http.StatusBadRequest, "parte inválida (AGENCY/OWNER/TENANT/GUARANTOR/OTHER)", nil)
		return
	}

	fecha := service.HoyFecha()
	if in.Fecha != "" {
		f, err := parseFecha(in.Fecha)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "fecha inválida (AAAA-MM-DD)", nil)
			return
		}
		fecha = service.SoloFecha(f)
	}

	moneda := strings.ToUpper(strings.TrimSpace(in.Moneda))
	if moneda == "" {
		moneda = "ARS"
	}

	if in.ContratoID != nil {
		var cnt int64
		config.DB.Model(&models.Contrato{}).
			Where("id = ? AND agencia = ?", *in.ContratoID, agencia).
			Count(&cnt)
		if cnt == 0 {
			utils.Error(c, http.StatusNotFound, "Contrato no encontrado", nil)
			return
		}
	}

	m := models.MovimientoCaja{
		Agencia:       agencia,
		Tipo:          models.TipoMovimiento(in.Tipo),
		SubTipo:       strings.TrimSpace(in.SubTipo),
		Estado:        models.MovPendiente,
		Importe:       in.Importe,
		Moneda:        moneda,
		Fecha:         fecha,
		Parte:         parte,
		ParteID:       in.ParteID,
		ContratoID:    in.ContratoID,
		PropiedadID:   in.PropiedadID,
		PropietarioID: in.PropietarioID,
		InquilinoID:   in.InquilinoID,
		CuotaID:       in.CuotaID,
		PagoID:        in.PagoID,
		Notas:         in.Notas,
	}
	if err := config.DB.Create(&m).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear el movimiento", err)
		return
	}
	utils.Created(c, "Movimiento creado", m)
}

// GET /caja?estado=&tipo=&contrato_id=&desde=&hasta=
func ListarMovimientos(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	q := config.DB.Where("agencia = ?", agencia).Order("fecha DESC, id DESC")
	if estado := c.Query("estado"); estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if sid := c.Query("contrato_id"); sid != "" {
		id, _ := strconv.Atoi(sid)
		q = q.Where("contrato_id = ?", id)
	}
	if desde := c.Query("desde"); desde != "" {
		if f, err := parseFecha(desde); err == nil {
			q = q.Where("fecha >= ?", service.SoloFecha(f))
		}
	}
	if hasta := c.Query("hasta"); hasta != "" {
		if f, err := parseFecha(hasta); err == nil {
			q = q.Where("fecha <= ?", service.SoloFecha(f))
		}
	}

	var rows []models.MovimientoCaja
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar movimientos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type CobrarMovimientoInput struct {
	Retener bool `json:"retener"` // true: queda RETAINED en vez de COLLECTED
}

// POST /caja/:id/cobrar — PENDING -> COLLECTED (o RETAINED)
func CobrarMovimiento(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in CobrarMovimientoInput
	_ = c.ShouldBindJSON(&in)

	var m models.MovimientoCaja
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&m).Error; err != nil {
			return err
		}
		if m.Estado != models.MovPendiente {
			return errEstadoInvalido
		}
		nuevo := models.MovCobrado
		if in.Retener {
			nuevo = models.MovRetenido
		}
		if err := tx.Model(&models.MovimientoCaja{}).
			Where("id = ?", m.ID).
			Update("estado", nuevo).Error; err != nil {
			return err
		}
		m.Estado = nuevo
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Movimiento no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "Solo se cobra un movimiento PENDING", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo cobrar el movimiento", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": m})
}

// POST /caja/:id/liberar — COLLECTED/RETAINED -> READY_TO_TRANSFER
func LiberarMovimiento(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var m models.MovimientoCaja
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&m).Error; err != nil {
			return err
		}
		if m.Estado != models.MovCobrado && m.Estado != models.MovRetenido {
			return errEstadoInvalido
		}
		if err := tx.Model(&models.MovimientoCaja{}).
			Where("id = ?", m.ID).
			Update("estado", models.MovListoTransferir).Error; err != nil {
			return err
		}
		m.Estado = models.MovListoTransferir
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Movimiento no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "Solo se libera un movimiento COLLECTED o RETAINED", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo liberar el movimiento", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": m})
}

type TransferirMovimientoInput struct {
	TransferidoPor string `json:"transferido_por"`
	Referencia     string `json:"referencia"`
}

// POST /caja/:id/transferir — idempotente sobre TRANSFERRED
func TransferirMovimiento(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in TransferirMovimientoInput
	_ = c.ShouldBindJSON(&in)
	transferidoPor := in.TransferidoPor
	if transferidoPor == "" {
		transferidoPor = currentNombre(c)
	}

	var m models.MovimientoCaja
	yaTransferido := false

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&m).Error; err != nil {
			return err
		}
		if m.Estado == models.MovTransferido {
			// reintento del mismo transfer: éxito sin re-mutar
			yaTransferido = true
			return nil
		}
		if m.Estado != models.MovListoTransferir {
			return errEstadoInvalido
		}

		ahora := time.Now().UTC()
		if err := tx.Model(&models.MovimientoCaja{}).
			Where("id = ?", m.ID).
			Updates(map[string]interface{}{
				"estado":            models.MovTransferido,
				"transferido_en":    ahora,
				"transferido_por":   transferidoPor,
				"ref_transferencia": in.Referencia,
			}).Error; err != nil {
			return err
		}
		m.Estado = models.MovTransferido
		m.TransferidoEn = &ahora
		m.TransferidoPor = transferidoPor
		m.RefTransferencia = in.Referencia
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Movimiento no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "El movimiento no está listo para transferir", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo transferir el movimiento", err)
		}
		return
	}

	msg := "Movimiento transferido"
	if yaTransferido {
		msg = "El movimiento ya estaba transferido"
	}
	utils.Success(c, msg, m)
}

type AnularMovimientoInput struct {
	Motivo     string `json:"motivo"`
	AnuladoPor string `json:"anulado_por"`
}

// POST /caja/:id/anular — idempotente sobre VOID; TRANSFERRED no se anula
func AnularMovimiento(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in AnularMovimientoInput
	_ = c.ShouldBindJSON(&in)
	anuladoPor := in.AnuladoPor
	if anuladoPor == "" {
		anuladoPor = currentNombre(c)
	}

	var m models.MovimientoCaja
	yaAnulado := false

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&m).Error; err != nil {
			return err
		}
		if m.Estado == models.MovAnulado {
			yaAnulado = true
			return nil
		}
		if m.Estado == models.MovTransferido {
			return errEstadoInvalido
		}

		ahora := time.Now().UTC()
		if err := tx.Model(&models.MovimientoCaja{}).
			Where("id = ?", m.ID).
			Updates(map[string]interface{}{
				"estado":           models.MovAnulado,
				"anulado_en":       ahora,
				"anulado_por":      anuladoPor,
				"motivo_anulacion": in.Motivo,
			}).Error; err != nil {
			return err
		}
		m.Estado = models.MovAnulado
		m.AnuladoEn = &ahora
		m.AnuladoPor = anuladoPor
		m.MotivoAnulacion = in.Motivo
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Movimiento no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "Un movimiento transferido no se puede anular", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo anular el movimiento", err)
		}
		return
	}

	msg := "Movimiento anulado"
	if yaAnulado {
		msg = "El movimiento ya estaba anulado"
	}
	utils.Success(c, msg, m)
}

type resumenPorClave struct {
	Clave   string `json:"clave"`
	Cant    int64  `json:"cantidad"`
	Importe int64  `json:"importe"`
}

// GET /caja/resumen — plegado sobre el libro completo en cada lectura,
// sin agregados cacheados
func ResumenCaja(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	// efectivo en mano: cobrado o retenido, excluyendo egresos
	var enMano int64
	if err := config.DB.Model(&models.MovimientoCaja{}).
		Where("agencia = ? AND estado IN ? AND tipo <> ?",
			agencia,
			[]models.EstadoMovimiento{models.MovCobrado, models.MovRetenido},
			models.MovEgreso).
		Select("COALESCE(SUM(importe), 0)").
		Scan(&enMano).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al calcular resumen", err)
		return
	}

	var porEstado []resumenPorClave
	if err := config.DB.Model(&models.MovimientoCaja{}).
		Where("agencia = ?", agencia).
		Select("estado AS clave, COUNT(*) AS cant, COALESCE(SUM(importe), 0) AS importe").
		Group("estado").
		Scan(&porEstado).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al calcular resumen", err)
		return
	}

	var porTipo []resumenPorClave
	if err := config.DB.Model(&models.MovimientoCaja{}).
		Where("agencia = ?", agencia).
		Select("tipo AS clave, COUNT(*) AS cant, COALESCE(SUM(importe), 0) AS importe").
		Group("tipo").
		Scan(&porTipo).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al calcular resumen", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"efectivo_en_mano": enMano,
			"por_estado":       porEstado,
			"por_tipo":         porTipo,
		},
	})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/service"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func metodoPagoValido(m models.MetodoPago) bool {
	switch m {
	case models.PagoEfectivo, models.PagoTransferencia, models.PagoTarjeta, models.PagoOtro:
		return true
	}
	return false
}

type RegistrarPagoInput struct {
	Importe    int64  `json:"importe" binding:"required"`
	Metodo     string `json:"metodo" binding:"required"`
	Referencia string `json:"referencia"`
	Notas      string `json:"notas"`
	Fecha      string `json:"fecha"` // AAAA-MM-DD, default hoy

	// crea además el ingreso en el libro de caja, vinculado al pago
	RegistrarEnCaja bool `json:"registrar_en_caja"`
}

// POST /cuotas/:id/pagos
func RegistrarPago(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in RegistrarPagoInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Importe <= 0 {
		utils.Error(c, http.StatusBadRequest, "payload inválido: importe positivo y método requeridos", nil)
		return
	}
	if !metodoPagoValido(models.MetodoPago(in.Metodo)) {
		utils.Error(c, http.StatusBadRequest, "metodo inválido (CASH/TRANSFER/CARD/OTHER)", nil)
		return
	}

	fechaPago := service.HoyFecha()
	if in.Fecha != "" {
		f, err := parseFecha(in.Fecha)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "fecha inválida (AAAA-MM-DD)", nil)
			return
		}
		fechaPago = service.SoloFecha(f)
	}

	referencia := in.Referencia
	if referencia == "" {
		referencia = utils.GenRecibo()
	}

	var cuota models.Cuota
	var pago models.Pago
	var mov *models.MovimientoCaja

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&cuota).Error; err != nil {
			return err
		}

		pago = models.Pago{
			Agencia:    agencia,
			ContratoID: cuota.ContratoID,
			CuotaID:    cuota.ID,
			Fecha:      fechaPago,
			Importe:    in.Importe,
			Metodo:     models.MetodoPago(in.Metodo),
			Referencia: referencia,
			Notas:      in.Notas,
			Estado:     models.PagoOK,
		}
		if err := tx.Create(&pago).Error; err != nil {
			return err
		}

		// acumulación: PARTIAL hasta cubrir el importe, PAID al completarlo
		cuota.Pagado += in.Importe
		if cuota.Pagado >= cuota.Importe {
			cuota.Estado = models.CuotaPagada
			cuota.PagadaEn = &pago.Fecha
		} else {
			cuota.Estado = models.CuotaParcial
			cuota.PagadaEn = nil
		}
		if err := tx.Model(&models.Cuota{}).
			Where("id = ?", cuota.ID).
			Updates(map[string]interface{}{
				"pagado":    cuota.Pagado,
				"estado":    cuota.Estado,
				"pagada_en": cuota.PagadaEn,
			}).Error; err != nil {
			return err
		}

		if in.RegistrarEnCaja {
			var ct models.Contrato
			if err := tx.First(&ct, cuota.ContratoID).Error; err != nil {
				return err
			}
			m := models.MovimientoCaja{
				Agencia:     agencia,
				Tipo:        models.MovIngreso,
				SubTipo:     "alquiler",
				Estado:      models.MovCobrado,
				Importe:     in.Importe,
				Moneda:      ct.Moneda,
				Fecha:       fechaPago,
				Parte:       models.ParteAgencia,
				ContratoID:  &ct.ID,
				PropiedadID: &ct.PropiedadID,
				InquilinoID: &ct.InquilinoID,
				CuotaID:     &cuota.ID,
				PagoID:      &pago.ID,
				Notas:       "Cobro de alquiler " + cuota.Periodo,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			mov = &m
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Cuota no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "No se pudo registrar el pago", err)
		return
	}

	resp := gin.H{"cuota": cuota, "pago": pago}
	if mov != nil {
		resp["movimiento"] = mov
	}
	utils.Created(c, "Pago registrado", resp)
}

type AnularPagoInput struct {
	Motivo     string `json:"motivo"`
	AnuladoPor string `json:"anulado_por"`
}

// POST /pagos/:id/anular — idempotente: anular un pago ya anulado es no-op.
// Recalcula la cuota sumando los pagos OK que sobreviven y cascadea la
// anulación a los movimientos de caja vinculados.
func AnularPago(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in AnularPagoInput
	_ = c.ShouldBindJSON(&in)
	anuladoPor := in.AnuladoPor
	if anuladoPor == "" {
		anuladoPor = currentNombre(c)
	}

	var pago models.Pago
	var cuota models.Cuota
	var movsAnulados int64
	yaAnulado := false

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND agencia = ?", id, agencia).First(&pago).Error; err != nil {
			return err
		}
		if pago.Estado == models.PagoAnulado {
			yaAnulado = true
			return tx.First(&cuota, pago.CuotaID).Error
		}

		ahora := time.Now().UTC()
		if err := tx.Model(&models.Pago{}).
			Where("id = ?", pago.ID).
			Updates(map[string]interface{}{
				"estado":           models.PagoAnulado,
				"anulado_en":       ahora,
				"anulado_por":      anuladoPor,
				"motivo_anulacion": in.Motivo,
			}).Error; err != nil {
			return err
		}
		pago.Estado = models.PagoAnulado
		pago.AnuladoEn = &ahora
		pago.AnuladoPor = anuladoPor
		pago.MotivoAnulacion = in.Motivo

		if err := lockForUpdate(tx).First(&cuota, pago.CuotaID).Error; err != nil {
			return err
		}

		// recomputo desde los pagos OK restantes
		var restantes []models.Pago
		if err := tx.Where("cuota_id = ? AND estado = ?", cuota.ID, models.PagoOK).
			Order("fecha ASC, id ASC").
			Find(&restantes).Error; err != nil {
			return err
		}
		var suma int64
		var ultimaFecha *time.Time
		for i := range restantes {
			suma += restantes[i].Importe
			if ultimaFecha == nil || restantes[i].Fecha.After(*ultimaFecha) {
				ultimaFecha = &restantes[i].Fecha
			}
		}

		cuota.Pagado = suma
		if suma >= cuota.Importe {
			cuota.Estado = models.CuotaPagada
			cuota.PagadaEn = ultimaFecha
		} else {
			// la anulación colapsa a PENDING aunque quede saldo parcial
			cuota.Estado = models.CuotaPendiente
			cuota.PagadaEn = nil
		}
		if err := tx.Model(&models.Cuota{}).
			Where("id = ?", cuota.ID).
			Updates(map[string]interface{}{
				"pagado":    cuota.Pagado,
				"estado":    cuota.Estado,
				"pagada_en": cuota.PagadaEn,
			}).Error; err != nil {
			return err
		}

		// cascada al libro de caja; TRANSFERRED es terminal y no se toca
		res := tx.Model(&models.MovimientoCaja{}).
			Where("pago_id = ? AND estado NOT IN ?", pago.ID,
				[]models.EstadoMovimiento{models.MovAnulado, models.MovTransferido}).
			Updates(map[string]interface{}{
				"estado":           models.MovAnulado,
				"anulado_en":       ahora,
				"anulado_por":      anuladoPor,
				"motivo_anulacion": "Anulación del pago " + pago.Referencia,
			})
		if res.Error != nil {
			return res.Error
		}
		movsAnulados = res.RowsAffected
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Pago no encontrado", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "No se pudo anular el pago", err)
		return
	}

	msg := "Pago anulado"
	if yaAnulado {
		msg = "El pago ya estaba anulado"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"data": gin.H{
			"pago":                 pago,
			"cuota":                cuota,
			"movimientos_anulados": movsAnulados,
		},
	})
}

// GET /cuotas/:id/pagos — historial completo, anulados incluidos
func ListarPagosCuota(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var cuota models.Cuota
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&cuota).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Cuota no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar cuota", err)
		return
	}

	var pagos []models.Pago
	if err := config.DB.
		Where("cuota_id = ?", cuota.ID).
		Order("fecha ASC, id ASC").
		Find(&pagos).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar pagos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pagos})
}

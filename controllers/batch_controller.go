package controllers

import (
	"net/http"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/service"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /batch/generar-cuotas — recorre los contratos ACTIVE y completa los
// períodos que falten. Pensado para dispararse desde un cron externo; los
// períodos existentes se saltean, así que repetirlo es inocuo.
func GenerarCuotasBatch(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var contratos []models.Contrato
	if err := config.DB.
		Where("agencia = ? AND estado = ?", agencia, models.ContratoActivo).
		Order("id ASC").
		Find(&contratos).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar contratos", err)
		return
	}

	var creadas, omitidas int
	for i := range contratos {
		ct := &contratos[i]
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			cr, om, err := generarCuotasContrato(tx, ct)
			creadas += cr
			omitidas += om
			return err
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError,
				"Fallo generando cuotas del contrato " + ct.Codigo, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Generación terminada",
		"data": gin.H{
			"contratos": len(contratos),
			"creadas":   creadas,
			"omitidas":  omitidas,
		},
	})
}

// GET /batch/reparar-fechas — corrección puntual para contratos cuya fecha de
// inicio quedó guardada con un timestamp no canónico (deriva de huso horario):
// normaliza a mediodía UTC, recalcula la fecha de fin y regenera las cuotas
// no pagas. Las PAID se preservan por período, nunca se recrean.
func RepararFechasInicio(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var contratos []models.Contrato
	if err := config.DB.
		Where("agencia = ?", agencia).
		Order("id ASC").
		Find(&contratos).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar contratos", err)
		return
	}

	var reparados, regeneradas int
	for i := range contratos {
		ct := &contratos[i]
		if service.EsMediodiaUTC(ct.FechaInicio) {
			continue
		}

		err := config.DB.Transaction(func(tx *gorm.DB) error {
			ct.FechaInicio = service.MediodiaUTC(ct.FechaInicio)
			ct.FechaFin = ct.FechaInicio.AddDate(0, ct.DuracionMeses, 0)
			if err := tx.Model(&models.Contrato{}).
				Where("id = ?", ct.ID).
				Updates(map[string]interface{}{
					"fecha_inicio": ct.FechaInicio,
					"fecha_fin":    ct.FechaFin,
				}).Error; err != nil {
				return err
			}

			if ct.Estado == models.ContratoBorrador {
				return nil
			}

			// se tiran las cuotas no pagas y se regeneran con la fecha buena
			if err := tx.Where("agencia = ? AND contrato_id = ? AND estado <> ?",
				agencia, ct.ID, models.CuotaPagada).
				Delete(&models.Cuota{}).Error; err != nil {
				return err
			}
			cr, _, err := generarCuotasContrato(tx, ct)
			regeneradas += cr
			return err
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError,
				"Fallo reparando el contrato " + ct.Codigo, err)
			return
		}
		reparados++
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reparación terminada",
		"data": gin.H{
			"revisados":   len(contratos),
			"reparados":   reparados,
			"regeneradas": regeneradas,
		},
	})
}

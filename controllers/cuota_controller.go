package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/service"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /contratos/:id/cuotas — cuotas del contrato con la mora del día
func ListarCuotasContrato(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var ct models.Contrato
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&ct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Contrato no encontrado", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar contrato", err)
		return
	}

	var cuotas []models.Cuota
	if err := config.DB.
		Where("agencia = ? AND contrato_id = ?", agencia, ct.ID).
		Order("periodo ASC").
		Find(&cuotas).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar cuotas", err)
		return
	}

	hoy := service.HoyFecha()
	for i := range cuotas {
		cuotas[i].Mora = moraCuota(&cuotas[i], &ct, hoy)
	}
	c.JSON(http.StatusOK, gin.H{"data": cuotas})
}

type cuotaVencidaRow struct {
	Cuota          models.Cuota `json:"cuota"`
	ContratoCodigo string       `json:"contrato_codigo"`
	DiasAtraso     int          `json:"dias_atraso"`
}

// GET /cuotas/vencidas — reporte de cobranza: cuotas impagas ya vencidas,
// con la mora calculada al día
func CuotasVencidas(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	hoy := service.HoyFecha()

	var cuotas []models.Cuota
	if err := config.DB.
		Where("agencia = ? AND estado IN ? AND vencimiento < ?",
			agencia,
			[]models.EstadoCuota{models.CuotaPendiente, models.CuotaParcial, models.CuotaVencida},
			hoy).
		Order("vencimiento ASC, id ASC").
		Find(&cuotas).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar cuotas vencidas", err)
		return
	}

	// política de mora por contrato, un fetch por contrato distinto
	contratos := make(map[uint]*models.Contrato)
	rows := make([]cuotaVencidaRow, 0, len(cuotas))
	var moraTotal, saldoTotal int64
	for i := range cuotas {
		ct, ok := contratos[cuotas[i].ContratoID]
		if !ok {
			var cargado models.Contrato
			if err := config.DB.First(&cargado, cuotas[i].ContratoID).Error; err != nil {
				utils.Error(c, http.StatusInternalServerError, "Error al cargar contrato", err)
				return
			}
			ct = &cargado
			contratos[cuotas[i].ContratoID] = ct
		}

		cuotas[i].Mora = moraCuota(&cuotas[i], ct, hoy)
		moraTotal += cuotas[i].Mora
		saldoTotal += cuotas[i].Importe - cuotas[i].Pagado

		rows = append(rows, cuotaVencidaRow{
			Cuota:          cuotas[i],
			ContratoCodigo: ct.Codigo,
			DiasAtraso:     service.DiasEntre(cuotas[i].Vencimiento, hoy),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"totales": gin.H{
			"cuotas": len(rows),
			"saldo":  saldoTotal,
			"mora":   moraTotal,
		},
	})
}

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

func tipoMoraValido(t models.TipoMora) bool {
	switch t {
	case models.MoraNinguna, models.MoraFija, models.MoraPorcentaje:
		return true
	}
	return false
}

// generarCuotasContrato corre el generador y persiste solo los períodos que
// faltan: los existentes (en particular los PAID) jamás se recrean ni pisan.
func generarCuotasContrato(tx *gorm.DB, ct *models.Contrato) (creadas int, omitidas int, err error) {
	lineas := service.GenerarCronograma(
		ct.FechaInicio, ct.DuracionMeses, ct.ImporteBase,
		ct.AjusteCadaMeses, ct.Ajustes, ct.DiaPago,
	)

	var existentes []models.Cuota
	if err := tx.Select("periodo").
		Where("agencia = ? AND contrato_id = ?", ct.Agencia, ct.ID).
		Find(&existentes).Error; err != nil {
		return 0, 0, err
	}
	ocupados := make(map[string]bool, len(existentes))
	for _, cu := range existentes {
		ocupados[cu.Periodo] = true
	}

	for _, l := range lineas {
		if ocupados[l.Periodo] {
			omitidas++
			continue
		}
		cu := models.Cuota{
			Agencia:     ct.Agencia,
			ContratoID:  ct.ID,
			Periodo:     l.Periodo,
			Vencimiento: l.Vencimiento,
			Importe:     l.Importe,
			Estado:      models.CuotaPendiente,
		}
		if err := tx.Create(&cu).Error; err != nil {
			// carrera con otra generación concurrente: el índice único manda
			if esViolacionUnique(err) {
				omitidas++
				continue
			}
			return creadas, omitidas, err
		}
		creadas++
	}
	return creadas, omitidas, nil
}

type CrearContratoInput struct {
	PropiedadID   uint  `json:"propiedad_id" binding:"required"`
	PropietarioID uint  `json:"propietario_id" binding:"required"`
	InquilinoID   uint  `json:"inquilino_id" binding:"required"`
	GaranteID     *uint `json:"garante_id"`

	FechaInicio   string `json:"fecha_inicio" binding:"required"` // AAAA-MM-DD
	DuracionMeses int    `json:"duracion_meses" binding:"required"`
	ImporteBase   int64  `json:"importe_base" binding:"required"`

	DiaPago         int       `json:"dia_pago"`
	Moneda          string    `json:"moneda"`
	AjusteCadaMeses int       `json:"ajuste_cada_meses"`
	Ajustes         []float64 `json:"ajustes"`      // % por evento
	AjustePlano     *float64  `json:"ajuste_plano"` // alternativa: mismo % en todos
	MoraTipo        string    `json:"mora_tipo"`
	MoraValor       float64   `json:"mora_valor"`

	Borrador bool   `json:"borrador"` // carga sin firmar: no genera cuotas
	Notas    string `json:"notas"`
}

// POST /contratos
func CrearContrato(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var in CrearContratoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "payload inválido", err)
		return
	}

	// toda la validación antes de escribir nada
	if in.DuracionMeses < 1 {
		utils.Error(c, http.StatusBadRequest, "duracion_meses debe ser >= 1", nil)
		return
	}
	if in.ImporteBase <= 0 {
		utils.Error(c, http.StatusBadRequest, "importe_base debe ser positivo", nil)
		return
	}
	if in.AjusteCadaMeses < 0 {
		utils.Error(c, http.StatusBadRequest, "ajuste_cada_meses no puede ser negativo", nil)
		return
	}
	moraTipo := models.TipoMora(in.MoraTipo)
	if in.MoraTipo == "" {
		moraTipo = models.MoraNinguna
	}
	if !tipoMoraValido(moraTipo) {
		utils.Error(c, http.StatusBadRequest, "mora_tipo inválido (NONE/FIXED/PERCENT)", nil)
		return
	}
	if moraTipo != models.MoraNinguna && in.MoraValor < 0 {
		utils.Error(c, http.StatusBadRequest, "mora_valor no puede ser negativo", nil)
		return
	}
	inicio, err := parseFecha(in.FechaInicio)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "fecha_inicio inválida (AAAA-MM-DD)", nil)
		return
	}
	inicio = service.MediodiaUTC(inicio)

	// referencias: propiedad + personas dentro de la agencia
	var prop models.Propiedad
	if err := config.DB.Where("id = ? AND agencia = ?", in.PropiedadID, agencia).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Propiedad no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar propiedad", err)
		return
	}
	personas := []uint{in.PropietarioID, in.InquilinoID}
	if in.GaranteID != nil {
		personas = append(personas, *in.GaranteID)
	}
	var cntPersonas int64
	config.DB.Model(&models.Persona{}).
		Where("agencia = ? AND id IN ?", agencia, personas).
		Count(&cntPersonas)
	if cntPersonas != int64(len(personas)) {
		utils.Error(c, http.StatusNotFound, "Propietario, inquilino o garante no encontrado", nil)
		return
	}

	if !in.Borrador && prop.Estado == models.PropiedadAlquilada {
		utils.Error(c, http.StatusConflict, "La propiedad ya tiene un contrato vigente", nil)
		return
	}

	diaPago := in.DiaPago
	if diaPago == 0 {
		diaPago = 10
	}
	diaPago = service.ClampDiaPago(diaPago)

	moneda := strings.ToUpper(strings.TrimSpace(in.Moneda))
	if moneda == "" {
		moneda = "ARS"
	}

	ajustes := models.AjustesPorcentuales(in.Ajustes)
	if len(ajustes) == 0 && in.AjustePlano != nil {
		ajustes = service.RepetirAjuste(*in.AjustePlano, in.DuracionMeses, in.AjusteCadaMeses)
	}

	estado := models.ContratoActivo
	if in.Borrador {
		estado = models.ContratoBorrador
	}

	ct := models.Contrato{
		Agencia:         agencia,
		PropiedadID:     in.PropiedadID,
		PropietarioID:   in.PropietarioID,
		InquilinoID:     in.InquilinoID,
		GaranteID:       in.GaranteID,
		FechaInicio:     inicio,
		FechaFin:        inicio.AddDate(0, in.DuracionMeses, 0),
		DuracionMeses:   in.DuracionMeses,
		ImporteBase:     in.ImporteBase,
		Estado:          estado,
		DiaPago:         diaPago,
		Moneda:          moneda,
		AjusteCadaMeses: in.AjusteCadaMeses,
		Ajustes:         ajustes,
		MoraTipo:        moraTipo,
		MoraValor:       in.MoraValor,
		Notas:           in.Notas,
	}

	var creadas int
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ct).Error; err != nil {
			return err
		}

		// el código sale del id de la fila: dos altas concurrentes jamás
		// comparten secuencia
		ct.Codigo = utils.GenCodigoContrato(int64(ct.ID), time.Now().UTC())
		if err := tx.Model(&models.Contrato{}).
			Where("id = ?", ct.ID).
			Update("codigo", ct.Codigo).Error; err != nil {
			return err
		}

		if in.Borrador {
			return nil
		}

		// contrato + cuotas se persisten juntos
		var err error
		creadas, _, err = generarCuotasContrato(tx, &ct)
		if err != nil {
			return err
		}

		return tx.Model(&models.Propiedad{}).
			Where("id = ?", prop.ID).
			Updates(map[string]interface{}{
				"estado":              models.PropiedadAlquilada,
				"inquilino_actual_id": in.InquilinoID,
			}).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear el contrato", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ct, "cuotas_generadas": creadas})
}

// POST /contratos/:id/activar — firma de un contrato en borrador
func ActivarContrato(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var ct models.Contrato
	var creadas int
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&ct).Error; err != nil {
			return err
		}
		if ct.Estado != models.ContratoBorrador {
			return errEstadoInvalido
		}

		// mismo chequeo que en el alta: no se firma sobre propiedad ocupada
		var prop models.Propiedad
		if err := lockForUpdate(tx).First(&prop, ct.PropiedadID).Error; err != nil {
			return err
		}
		if prop.Estado == models.PropiedadAlquilada {
			return errPropiedadOcupada
		}

		if err := tx.Model(&models.Contrato{}).
			Where("id = ?", ct.ID).
			Update("estado", models.ContratoActivo).Error; err != nil {
			return err
		}
		ct.Estado = models.ContratoActivo

		var err error
		creadas, _, err = generarCuotasContrato(tx, &ct)
		if err != nil {
			return err
		}

		return tx.Model(&models.Propiedad{}).
			Where("id = ?", ct.PropiedadID).
			Updates(map[string]interface{}{
				"estado":              models.PropiedadAlquilada,
				"inquilino_actual_id": ct.InquilinoID,
			}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Contrato no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "Solo se puede activar un contrato en borrador", nil)
		case errors.Is(err, errPropiedadOcupada):
			utils.Error(c, http.StatusConflict, "La propiedad ya tiene un contrato vigente", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo activar el contrato", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ct, "cuotas_generadas": creadas})
}

// GET /contratos?estado=
func GetAllContratos(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var rows []models.Contrato
	q := config.DB.Where("agencia = ?", agencia).Order("fecha_fin ASC, id DESC")
	if estado := c.Query("estado"); estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar contratos", err)
		return
	}

	// sincronización por lectura, igual que en el detalle
	for i := range rows {
		if err := sincronizarContrato(config.DB, &rows[i]); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Error al sincronizar contratos", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GET /contratos/:id — detalle con cuotas (mora derivada), pagos y totales
func DetalleContrato(c *gin.Context) {
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

	if err := sincronizarContrato(config.DB, &ct); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al sincronizar contrato", err)
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
	var facturado, pagado, moraTotal int64
	for i := range cuotas {
		cuotas[i].Mora = moraCuota(&cuotas[i], &ct, hoy)
		facturado += cuotas[i].Importe
		pagado += cuotas[i].Pagado
		moraTotal += cuotas[i].Mora
	}

	var pagos []models.Pago
	if err := config.DB.
		Where("agencia = ? AND contrato_id = ?", agencia, ct.ID).
		Order("fecha ASC, id ASC").
		Find(&pagos).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar pagos", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"contrato": ct,
			"cuotas":   cuotas,
			"pagos":    pagos,
			"totales": gin.H{
				"facturado": facturado,
				"pagado":    pagado,
				"saldo":     facturado - pagado,
				"mora":      moraTotal,
			},
		},
	})
}

type ActualizarContratoInput struct {
	DiaPago         *int       `json:"dia_pago"`
	Moneda          *string    `json:"moneda"`
	AjusteCadaMeses *int       `json:"ajuste_cada_meses"`
	Ajustes         *[]float64 `json:"ajustes"`
	MoraTipo        *string    `json:"mora_tipo"`
	MoraValor       *float64   `json:"mora_valor"`
	Notas           *string    `json:"notas"`

	// vuelve a generar las cuotas PENDING sin pagos con los valores nuevos;
	// las pagas (y las que tienen pagos parciales) no se tocan
	RegenerarPendientes bool `json:"regenerar_pendientes"`
}

// PUT /contratos/:id — solo campos de facturación
func ActualizarContrato(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in ActualizarContratoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "payload inválido", err)
		return
	}
	if in.MoraTipo != nil && !tipoMoraValido(models.TipoMora(*in.MoraTipo)) {
		utils.Error(c, http.StatusBadRequest, "mora_tipo inválido (NONE/FIXED/PERCENT)", nil)
		return
	}
	if in.AjusteCadaMeses != nil && *in.AjusteCadaMeses < 0 {
		utils.Error(c, http.StatusBadRequest, "ajuste_cada_meses no puede ser negativo", nil)
		return
	}

	var ct models.Contrato
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&ct).Error; err != nil {
			return err
		}

		if in.DiaPago != nil {
			ct.DiaPago = service.ClampDiaPago(*in.DiaPago)
		}
		if in.Moneda != nil && *in.Moneda != "" {
			ct.Moneda = strings.ToUpper(strings.TrimSpace(*in.Moneda))
		}
		if in.AjusteCadaMeses != nil {
			ct.AjusteCadaMeses = *in.AjusteCadaMeses
		}
		if in.Ajustes != nil {
			ct.Ajustes = models.AjustesPorcentuales(*in.Ajustes)
		}
		if in.MoraTipo != nil {
			ct.MoraTipo = models.TipoMora(*in.MoraTipo)
		}
		if in.MoraValor != nil {
			ct.MoraValor = *in.MoraValor
		}
		if in.Notas != nil {
			ct.Notas = *in.Notas
		}

		if err := tx.Save(&ct).Error; err != nil {
			return err
		}

		if in.RegenerarPendientes && ct.Estado != models.ContratoBorrador {
			if err := tx.Where("agencia = ? AND contrato_id = ? AND estado = ? AND pagado = 0",
				agencia, ct.ID, models.CuotaPendiente).
				Delete(&models.Cuota{}).Error; err != nil {
				return err
			}
			if _, _, err := generarCuotasContrato(tx, &ct); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Contrato no encontrado", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar el contrato", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ct})
}

type RescindirInput struct {
	Motivo string `json:"motivo"`
}

// POST /contratos/:id/rescindir — rescisión anticipada explícita
func RescindirContrato(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var in RescindirInput
	_ = c.ShouldBindJSON(&in)

	var ct models.Contrato
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&ct).Error; err != nil {
			return err
		}
		switch ct.Estado {
		case models.ContratoBorrador, models.ContratoActivo, models.ContratoPorVencer:
			// ok
		default:
			return errEstadoInvalido
		}

		ahora := time.Now().UTC()
		if err := tx.Model(&models.Contrato{}).
			Where("id = ?", ct.ID).
			Updates(map[string]interface{}{
				"estado":           models.ContratoRescindido,
				"rescindido_en":    ahora,
				"rescindido_por":   currentNombre(c),
				"motivo_rescision": in.Motivo,
			}).Error; err != nil {
			return err
		}
		ct.Estado = models.ContratoRescindido
		ct.RescindidoEn = &ahora

		return liberarPropiedad(tx, &ct)
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Contrato no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "El contrato ya está finalizado o rescindido", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo rescindir el contrato", err)
		}
		return
	}

	utils.Success(c, "Contrato rescindido", ct)
}

// DELETE /contratos/:id — solo borradores sin pagos
func DeleteContrato(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var ct models.Contrato
		if err := lockForUpdate(tx).
			Where("id = ? AND agencia = ?", id, agencia).
			First(&ct).Error; err != nil {
			return err
		}
		if ct.Estado != models.ContratoBorrador {
			return errEstadoInvalido
		}

		var pagos int64
		if err := tx.Model(&models.Pago{}).
			Where("agencia = ? AND contrato_id = ?", agencia, ct.ID).
			Count(&pagos).Error; err != nil {
			return err
		}
		if pagos > 0 {
			return errEstadoInvalido
		}

		if err := tx.Where("agencia = ? AND contrato_id = ?", agencia, ct.ID).
			Delete(&models.Cuota{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ct).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.Error(c, http.StatusNotFound, "Contrato no encontrado", nil)
		case errors.Is(err, errEstadoInvalido):
			utils.Error(c, http.StatusConflict, "Solo se puede borrar un borrador sin pagos", nil)
		default:
			utils.Error(c, http.StatusInternalServerError, "No se pudo borrar el contrato", err)
		}
		return
	}

	utils.Success(c, "Contrato borrado", nil)
}

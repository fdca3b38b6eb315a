package controllers

import (
	"time"

	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/service"

	"gorm.io/gorm"
)

// sincronizarContrato aplica las transiciones por paso del tiempo antes de
// cada lectura del contrato:
//
//	ACTIVE  -> EXPIRING  si hoy < fin <= hoy + 3 meses
//	ACTIVE/EXPIRING -> ENDED  si fin <= hoy
//
// DRAFT y TERMINATED no se tocan (son acciones explícitas del operador).
// Las escrituras son set idempotentes: dos lecturas concurrentes que corran
// la misma transición no rompen nada.
func sincronizarContrato(db *gorm.DB, ct *models.Contrato) error {
	if ct.Estado != models.ContratoActivo && ct.Estado != models.ContratoPorVencer {
		return nil
	}

	hoy := service.HoyFecha()
	fin := service.SoloFecha(ct.FechaFin)

	switch {
	case !fin.After(hoy):
		if err := db.Model(&models.Contrato{}).
			Where("id = ?", ct.ID).
			Update("estado", models.ContratoFinalizado).Error; err != nil {
			return err
		}
		ct.Estado = models.ContratoFinalizado
		return liberarPropiedad(db, ct)

	case ct.Estado == models.ContratoActivo && !fin.After(hoy.AddDate(0, 3, 0)):
		if err := db.Model(&models.Contrato{}).
			Where("id = ?", ct.ID).
			Update("estado", models.ContratoPorVencer).Error; err != nil {
			return err
		}
		ct.Estado = models.ContratoPorVencer
	}
	return nil
}

// liberarPropiedad vuelve la propiedad a AVAILABLE (y limpia el inquilino
// actual) cuando no le queda ningún otro contrato vigente. MAINTENANCE se
// respeta: solo se libera si estaba RENTED.
func liberarPropiedad(db *gorm.DB, ct *models.Contrato) error {
	var vigentes int64
	if err := db.Model(&models.Contrato{}).
		Where("agencia = ? AND propiedad_id = ? AND id <> ? AND estado IN ?",
			ct.Agencia, ct.PropiedadID, ct.ID,
			[]models.EstadoContrato{models.ContratoActivo, models.ContratoPorVencer}).
		Count(&vigentes).Error; err != nil {
		return err
	}
	if vigentes > 0 {
		return nil
	}

	return db.Model(&models.Propiedad{}).
		Where("id = ? AND estado = ?", ct.PropiedadID, models.PropiedadAlquilada).
		Updates(map[string]interface{}{
			"estado":              models.PropiedadDisponible,
			"inquilino_actual_id": nil,
		}).Error
}

// moraCuota calcula la mora derivada de una cuota con la política del contrato.
func moraCuota(cu *models.Cuota, ct *models.Contrato, hoy time.Time) int64 {
	return service.CalcularMora(cu.Importe, cu.Vencimiento, ct.MoraTipo, ct.MoraValor, cu.Estado, hoy)
}

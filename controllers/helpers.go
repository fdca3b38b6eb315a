package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// operación no permitida en el estado actual -> 409
var errEstadoInvalido = errors.New("operación inválida para el estado actual")

// la propiedad ya está alquilada por otro contrato -> 409
var errPropiedadOcupada = errors.New("la propiedad ya está alquilada")

func currentUsuario(c *gin.Context) (uint, string, error) {
	v, ok := c.Get("usuario_id")
	if !ok {
		return 0, "", errors.New("usuario_id no está en el context")
	}
	uid, ok := v.(uint)
	if !ok || uid == 0 {
		return 0, "", errors.New("usuario_id inválido")
	}

	a, _ := c.Get("agencia")
	agencia, ok := a.(string)
	if !ok || agencia == "" {
		return 0, "", errors.New("agencia no está en el context")
	}
	return uid, agencia, nil
}

func currentNombre(c *gin.Context) string {
	v, _ := c.Get("nombre")
	nombre, _ := v.(string)
	return nombre
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	// sqlite (tests) no soporta SELECT ... FOR UPDATE
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// parseFecha acepta AAAA-MM-DD
func parseFecha(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func esViolacionUnique(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

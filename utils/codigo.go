package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenCodigoContrato arma el código visible del contrato: CT-2026-000123
func GenCodigoContrato(seq int64, t time.Time) string {
	return fmt.Sprintf("CT-%d-%06d", t.Year(), seq)
}

// GenRecibo genera la referencia de un pago cuando el operador no carga una.
func GenRecibo() string {
	return "RC-" + strings.ToUpper(uuid.NewString()[:8])
}

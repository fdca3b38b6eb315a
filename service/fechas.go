package service

import "time"

// MediodiaUTC normaliza una fecha al mediodía UTC. Las fechas de contrato se
// guardan siempre así para que la fecha calendario no se corra un día al
// convertir entre husos horarios.
func MediodiaUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 12, 0, 0, 0, time.UTC)
}

func EsMediodiaUTC(t time.Time) bool {
	u := t.UTC()
	return u.Hour() == 12 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0
}

// SoloFecha trunca a medianoche UTC, para comparar fechas puras sin que la
// hora del día meta un off-by-one.
func SoloFecha(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DiasEntre devuelve días calendario entre dos fechas (hasta - desde).
func DiasEntre(desde, hasta time.Time) int {
	return int(SoloFecha(hasta).Sub(SoloFecha(desde)).Hours() / 24)
}

func HoyFecha() time.Time {
	return SoloFecha(time.Now().UTC())
}

// Package period calcula los buckets de tiempo de los reportes. Los buckets están
// alineados al calendario (no son ventanas deslizantes): el límite de una semana es el
// mismo para todo registro, sin importar la fecha inicial de la consulta, de modo que
// dos consultas solapadas producen buckets comparables y combinables.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-engine/internal/domain"
)

// Granularity tamaño del bucket.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

const dateLayout = "2006-01-02"

// ParseGranularity interpreta el parámetro de consulta; vacío devuelve def.
func ParseGranularity(s string, def Granularity) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return def, nil
	case Day, Week, Month, Year:
		return g, nil
	}
	return "", fmt.Errorf("%w: período %q no soportado (day, week, month, year)", domain.ErrInvalidInput, s)
}

// Key clave canónica, ordenable y legible del bucket que contiene t:
//
//	day   → 2026-02-14
//	week  → 2026-W07   (semana ISO 8601; el año es el año ISO)
//	month → 2026-02
//	year  → 2026
//
// loc define el calendario; nil usa UTC.
func Key(t time.Time, g Granularity, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	switch g {
	case Day:
		return t.Format(dateLayout)
	case Week:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Year:
		return fmt.Sprintf("%04d", t.Year())
	default:
		return t.Format("2006-01")
	}
}

// ValidateRange falla con domain.ErrInvalidRange si start es posterior a end.
func ValidateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: start_date (%s) es posterior a end_date (%s)",
			domain.ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
	}
	return nil
}

// Contains true si t está en [start, end] (ambos inclusive).
func Contains(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ParseRange convierte los strings YYYY-MM-DD en un rango inclusivo; aplica valores por
// defecto si están vacíos (inicio: primer día del mes de now; fin: final del día de now).
// end_date cubre su día completo.
func ParseRange(startStr, endStr string, now time.Time, loc *time.Location) (start, end time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	if endStr == "" {
		end = endOfDay(now)
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date inválido: %v", domain.ErrInvalidInput, err)
		}
		end = endOfDay(end)
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date inválido: %v", domain.ErrInvalidInput, err)
		}
	}

	if err := ValidateRange(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).Add(24*time.Hour - time.Nanosecond)
}

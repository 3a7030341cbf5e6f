package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
)

func TestKey_Granularidades(t *testing.T) {
	ts := time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-14", period.Key(ts, period.Day, nil))
	assert.Equal(t, "2026-W07", period.Key(ts, period.Week, nil))
	assert.Equal(t, "2026-02", period.Key(ts, period.Month, nil))
	assert.Equal(t, "2026", period.Key(ts, period.Year, nil))
}

// La semana ISO puede pertenecer al año anterior o siguiente.
func TestKey_SemanaISOCruzaAnio(t *testing.T) {
	assert.Equal(t, "2020-W53", period.Key(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), period.Week, nil))
	assert.Equal(t, "2025-W01", period.Key(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), period.Week, nil))
}

// Dos registros de la misma semana caen en el mismo bucket sin importar el inicio de la consulta.
func TestKey_AlineadoAlCalendario(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, period.Key(monday, period.Week, nil), period.Key(sunday, period.Week, nil))
	assert.NotEqual(t, period.Key(sunday, period.Week, nil), period.Key(nextMonday, period.Week, nil))
}

func TestKey_UsaLaZonaHoraria(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	// 2026-03-01 03:00 UTC es aún 28 de febrero en Bogotá (UTC-5)
	ts := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03", period.Key(ts, period.Month, time.UTC))
	assert.Equal(t, "2026-02", period.Key(ts, period.Month, bogota))
}

func TestKey_OrdenLexicograficoEsCronologico(t *testing.T) {
	a := period.Key(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), period.Day, nil)
	b := period.Key(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), period.Day, nil)
	assert.Less(t, a, b)
}

func TestParseGranularity(t *testing.T) {
	g, err := period.ParseGranularity("", period.Month)
	require.NoError(t, err)
	assert.Equal(t, period.Month, g)

	g, err = period.ParseGranularity("WEEK", period.Month)
	require.NoError(t, err)
	assert.Equal(t, period.Week, g)

	_, err = period.ParseGranularity("quarter", period.Month)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseRange_ValoresPorDefecto(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	start, end, err := period.ParseRange("", "", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 16, end.Day())
	assert.Equal(t, 23, end.Hour(), "end_date cubre el día completo")
}

func TestParseRange_InicioPosteriorAlFin(t *testing.T) {
	_, _, err := period.ParseRange("2026-05-02", "2026-05-01", time.Now(), time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestParseRange_MismoDiaEsValido(t *testing.T) {
	start, end, err := period.ParseRange("2026-05-01", "2026-05-01", time.Now(), time.UTC)
	require.NoError(t, err)
	assert.True(t, period.Contains(time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC), start, end))
}

func TestParseRange_FechaMalFormada(t *testing.T) {
	_, _, err := period.ParseRange("01/05/2026", "", time.Now(), time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContains_Inclusivo(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.True(t, period.Contains(start, start, end))
	assert.True(t, period.Contains(end, start, end))
	assert.False(t, period.Contains(end.Add(time.Nanosecond), start, end))
}

package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/pkg/config"
)

func dbConfig() config.DBConfig {
	return config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "secreto", DBName: "inv", SSLMode: "disable"}
}

func TestNewPoolConfig_TamañoDesdeConfiguracion(t *testing.T) {
	cfg := dbConfig()
	cfg.MaxConns = 8
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 45 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 45*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "inv", pc.ConnConfig.Database)
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect, "registra el codec decimal")
}

func TestNewPoolConfig_CerosConservanDefaults(t *testing.T) {
	def, err := newPoolConfig(dbConfig())
	require.NoError(t, err)

	cfg := dbConfig()
	cfg.MinConns = 500 // mayor que MaxConns: se ignora
	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, def.MaxConns, pc.MaxConns)
	assert.Equal(t, def.MinConns, pc.MinConns)
	assert.Equal(t, def.MaxConnLifetime, pc.MaxConnLifetime)
}

func TestNewPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := dbConfig()
	cfg.DatabaseURL = "postgres://otro:pw@replica:6543/reportes?sslmode=disable&application_name=bi"

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "replica", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "bi", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	cfg := dbConfig()
	cfg.DatabaseURL = "postgres://app@db:puerto/inv"
	_, err := newPoolConfig(cfg)
	assert.Error(t, err)
}

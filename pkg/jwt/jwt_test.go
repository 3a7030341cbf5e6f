package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-engine/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := jwt.Generate(secret, "U1", "C1", jwt.RoleBodeguero, "inventario-engine-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, companyID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "U1", userID)
	assert.Equal(t, "C1", companyID)
	assert.Equal(t, "bodeguero", role)
}

func TestGenerate_Rechaza(t *testing.T) {
	_, err := jwt.Generate("", "U1", "C1", jwt.RoleAdmin, "x", 60)
	assert.Error(t, err, "secret vacío")

	_, err = jwt.Generate(secret, "U1", "", jwt.RoleAdmin, "x", 60)
	assert.Error(t, err, "sin empresa")

	_, err = jwt.Generate(secret, "U1", "C1", "gerente", "x", 60)
	assert.Error(t, err, "rol desconocido")
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "U1", "C1", jwt.RoleAdmin, "x", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(secret, "U1", "C1", jwt.RoleAdmin, "x", 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestKnownRole(t *testing.T) {
	assert.True(t, jwt.KnownRole("vendedor"))
	assert.False(t, jwt.KnownRole(""))
	assert.False(t, jwt.KnownRole("Admin"))
}

func TestParse_RechazaClaimsFueraDeGenerate(t *testing.T) {
	sign := func(companyID, role string) string {
		tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
			UserID:           "U1",
			CompanyID:        companyID,
			Role:             role,
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}

	_, _, _, err := jwt.Parse(secret, sign("C1", "gerente"))
	assert.Error(t, err, "rol desconocido")

	_, _, _, err = jwt.Parse(secret, sign("", jwt.RoleAdmin))
	assert.Error(t, err, "sin empresa")

	_, _, role, err := jwt.Parse(secret, sign("C1", ""))
	require.NoError(t, err, "sin rol se resuelve en RequireRole")
	assert.Empty(t, role)
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/dukaanlabs/dukaan-api/pkg/jwt"
)

const (
	secret = "test-secret"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "dukaan-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "manager", "karachi-1", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotUser, gotRole, gotBranches, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "manager", gotRole)
	assert.Equal(t, "karachi-1", gotBranches)
}

func TestParse_ComodinDeSucursales(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", "*", issuer, 60)
	require.NoError(t, err)

	_, _, branches, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "*", branches)
}

func TestParse_SecretoIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", "*", issuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", "*", issuer, -5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(secret, "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "admin", "*", issuer, 60)
	assert.Error(t, err)
}

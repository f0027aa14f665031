package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceNo(t *testing.T) {
	id := GenerateInvoiceNo("INV")
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, id)
	assert.NotEqual(t, id, GenerateInvoiceNo("INV"))
}

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "shopflow")

	token, err := m.GenerateAccessToken("1", "admin", "ADMIN", []string{"billing"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "shopflow", claims.Issuer)
}

func TestJWTManagerRejectsForeignSignature(t *testing.T) {
	token, err := NewJWTManager("other", time.Hour, "shopflow").
		GenerateAccessToken("1", "admin", "ADMIN", nil)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour, "shopflow").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, "shopflow")
	token, err := m.GenerateAccessToken("1", "admin", "ADMIN", nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

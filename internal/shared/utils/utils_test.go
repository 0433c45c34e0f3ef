package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEtCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123!", hash)
	assert.True(t, CheckPassword(hash, "Secret123!"))
	assert.False(t, CheckPassword(hash, "secret123!"))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	pwd := GenerateTemporaryPassword()

	assert.True(t, strings.HasPrefix(pwd, "Temp"))
	assert.True(t, strings.HasSuffix(pwd, "!"))
	assert.Len(t, pwd, 13)
	assert.NotEqual(t, pwd, GenerateTemporaryPassword())
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("64b7f0c2a1b2c3d4e5f60718"))
	assert.False(t, IsObjectID("64b7f0c2"))
	assert.False(t, IsObjectID("zzb7f0c2a1b2c3d4e5f60718"))
	assert.False(t, IsObjectID(""))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:5432"
	assert.Equal(t, "10.0.0.5", ClientIP(r))

	r.Header.Set("X-Real-IP", "172.16.0.2")
	assert.Equal(t, "172.16.0.2", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(r))
}

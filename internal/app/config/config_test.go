package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("MAIL_PROVIDER", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "qualite_pro", cfg.MongoDB.Database)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "console", cfg.Mail.Provider)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.DigestInterval)
	assert.Equal(t, time.Hour, cfg.Scheduler.RetardInterval)
	assert.Equal(t, 6*time.Hour, cfg.Scheduler.EcheanceInterval)
}

func TestNewConfig_EnvironnementInconnu(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_DockerExigeSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "docker")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGODB_URI", "")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestNewConfig_SecretTropCourt(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "court")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestGetEnvStringSlice(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, getEnvStringSlice("CORS_ALLOWED_ORIGINS", nil))
	assert.Equal(t, []string{"x"}, getEnvStringSlice("ABSENTE_QUALITE", []string{"x"}))
}

func TestConvertisseurs(t *testing.T) {
	cfg := &Config{}
	cfg.Upload.MaxSizeMB = 2
	cfg.JWT = JWTConfig{Secret: "s", TTL: time.Minute, Issuer: "i"}

	assert.Equal(t, int64(2*1024*1024), NewStorageConfig(cfg).MaxSizeBytes)
	jwtCfg := NewJWTConfig(cfg)
	assert.Equal(t, "s", jwtCfg.Secret)
	assert.Equal(t, time.Minute, jwtCfg.TTL)
}

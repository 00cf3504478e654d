package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, "8000", cfg.Server.HTTPPort)
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "9090", cfg.Handlers.Prometheus.Port)
	assert.Equal(t, "user-directory", cfg.JWT.Issuer)
	assert.Equal(t, "user-directory-clients", cfg.JWT.Audience)
	assert.NotEmpty(t, cfg.JWT.SecretKey)
	assert.Equal(t, 10, cfg.JWT.LifetimeMinutes)
	assert.Equal(t, 10*time.Minute, cfg.JWT.Lifetime())
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 5, cfg.Security.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Security.LockoutWindow)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DIRECTORY_JWT_SECRETKEY", "from-env")
	t.Setenv("DIRECTORY_JWT_LIFETIMEMINUTES", "30")
	t.Setenv("DIRECTORY_SERVER_HTTPPORT", "8081")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
	assert.Equal(t, 30, cfg.JWT.LifetimeMinutes)
	assert.Equal(t, "8081", cfg.Server.HTTPPort)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Server.HTTPPort = "8000"
		c.JWT = JWTConfig{Issuer: "iss", Audience: "aud", SecretKey: "key", LifetimeMinutes: 5}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.SecretKey = "" }, wantErr: "jwt.secretKey"},
		{name: "missing issuer", mutate: func(c *Config) { c.JWT.Issuer = "" }, wantErr: "jwt.issuer"},
		{name: "missing audience", mutate: func(c *Config) { c.JWT.Audience = "" }, wantErr: "jwt.audience"},
		{name: "zero lifetime", mutate: func(c *Config) { c.JWT.LifetimeMinutes = 0 }, wantErr: "jwt.lifetimeMinutes"},
		{name: "missing port", mutate: func(c *Config) { c.Server.HTTPPort = "" }, wantErr: "server.HTTPPort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// EnvPrefix is prepended to every environment override, e.g. DIRECTORY_JWT_SECRETKEY.
const EnvPrefix = "DIRECTORY"

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	CORS     struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// JWTConfig is the signing configuration shared by token issuance and verification.
type JWTConfig struct {
	Issuer          string `mapstructure:"issuer"`
	Audience        string `mapstructure:"audience"`
	SecretKey       string `mapstructure:"secretKey"`
	LifetimeMinutes int    `mapstructure:"lifetimeMinutes"`
}

// Lifetime returns the token lifetime as a duration.
func (c JWTConfig) Lifetime() time.Duration {
	return time.Duration(c.LifetimeMinutes) * time.Minute
}

type SecurityConfig struct {
	BcryptCost       int           `mapstructure:"bcryptCost"`
	MaxLoginAttempts int           `mapstructure:"maxLoginAttempts"`
	LockoutWindow    time.Duration `mapstructure:"lockoutWindow"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.JWT.SecretKey == "" {
		errs = append(errs, errors.New("jwt.secretKey must be set"))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("jwt.issuer must be set"))
	}
	if c.JWT.Audience == "" {
		errs = append(errs, errors.New("jwt.audience must be set"))
	}
	if c.JWT.LifetimeMinutes <= 0 {
		errs = append(errs, fmt.Errorf("jwt.lifetimeMinutes must be positive, got %d", c.JWT.LifetimeMinutes))
	}
	if c.Server.HTTPPort == "" {
		errs = append(errs, errors.New("server.HTTPPort must be set"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

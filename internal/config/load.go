package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix: PETPULSE_SERVER_PORT => server.port
	EnvPrefix = "PETPULSE"

	// ConfigFileEnv apunta a un archivo de config opcional (yaml, toml, json).
	ConfigFileEnv = EnvPrefix + "_CONFIG"
)

var validate = validator.New()

// Variables heredadas que siguen funcionando además de PETPULSE_*.
// El orden importa: la primera con valor gana.
var legacyEnv = map[string][]string{
	"server.port": {"PETPULSE_SERVER_PORT", "PORT"},
	"store.dsn":   {"PETPULSE_STORE_DSN", "DB_DSN"},
	"log.level":   {"PETPULSE_LOG_LEVEL", "LOG_LEVEL"},
	"log.format":  {"PETPULSE_LOG_FORMAT", "LOG_FORMAT"},
	"log.app":     {"PETPULSE_LOG_APP", "APP_NAME"},
}

// Load carga .env (si existe), defaults, el archivo de PETPULSE_CONFIG (si está)
// y variables de entorno, en ese orden de precedencia creciente. Luego valida.
func Load() (*Config, error) {
	// .env es opcional; no pisa variables ya definidas.
	_ = godotenv.Load()

	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile es Load sin .env y con el path del archivo explícito ("" = sin archivo).
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range legacyEnv {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver == "" {
		if strings.TrimSpace(cfg.Store.DSN) != "" {
			cfg.Store.Driver = DriverPostgres
		} else {
			cfg.Store.Driver = DriverMemory
		}
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "petpulse")

	v.SetDefault("store.driver", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.database", "petpulse")
	v.SetDefault("store.migrate", true)
	v.SetDefault("store.timeout", 5*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.service_name", "petpulse")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("swagger", true)
}

// Addr devuelve ":<port>" para http.Server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

package config

import "time"

// Config agrupa toda la configuración del proceso.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	Tracing TracingConfig `mapstructure:"tracing"`

	// Swagger habilita /swagger/*.
	Swagger bool `mapstructure:"swagger"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	App    string `mapstructure:"app"`
}

// Drivers soportados por storage.Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type StoreConfig struct {
	// Driver vacío: postgres si hay DSN, memory si no.
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres sqlite mongo"`
	// DSN: URL de postgres, path del archivo sqlite o URI de mongo.
	DSN string `mapstructure:"dsn" validate:"required_unless=Driver memory"`
	// Database sólo aplica a mongo.
	Database string `mapstructure:"database" validate:"required_if=Driver mongo"`
	// Migrate corre las migraciones goose al abrir (postgres/sqlite).
	Migrate bool          `mapstructure:"migrate"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure    bool    `mapstructure:"insecure"`
	ServiceName string  `mapstructure:"service_name" validate:"required"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

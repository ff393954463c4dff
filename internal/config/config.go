package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Postgres PostgresConfig `validate:"required"`
	AMQP     AMQPConfig
	Logging  LoggingConfig `validate:"required"`
	Tracing  TracingConfig
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type PostgresConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	User     string `validate:"required"`
	Password string
	DBName   string `validate:"required"`
	SSLMode  string `validate:"required,oneof=disable require verify-ca verify-full"`
}

// AMQPConfig points at RabbitMQ. An empty URL means the server falls back to
// the in-memory queue.
type AMQPConfig struct {
	URL string
}

type LoggingConfig struct {
	Level string `validate:"required,oneof=debug info warn error"`
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// NewConfig loads .env (if present), then config.yaml (if present), then
// LUNCHLY_* environment variables, in increasing order of precedence.
func NewConfig() (*Configuration, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on OS environment variables")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lunchly")

	v.SetEnvPrefix("LUNCHLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "lunchly")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "lunchly")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("amqp.url", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.servicename", "lunchly")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "cleanCalc/internal/api/grpc"
	"cleanCalc/internal/api/http"
	"cleanCalc/internal/infrastructure/click"
	"cleanCalc/internal/infrastructure/kafka"
	"cleanCalc/internal/infrastructure/mongo"
	"cleanCalc/internal/infrastructure/pg"
	"cleanCalc/internal/infrastructure/redis"
	"cleanCalc/internal/pkg/logger"
)

const AppName = "CALCULATOR"

// envFileVar — переменная с путём к .env.
const envFileVar = AppName + "_ENV_FILE"

// Приёмники аналитики.
const (
	SinkNone       = "none"
	SinkClickHouse = "clickhouse"
	SinkPostgres   = "postgres"
	SinkMongo      = "mongo"
)

// AnalyticsConfig — куда консьюмер Kafka пишет события. Переменная: CALCULATOR_ANALYTICS_SINK.
type AnalyticsConfig struct {
	Sink string `envconfig:"SINK" default:"none" validate:"oneof=none clickhouse postgres mongo"`
}

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Server     http.ServerConfig `envconfig:"SERVER"`
	Grpc       apigrpc.Config    `envconfig:"GRPC"`
	Log        logger.Config     `envconfig:"LOG"`
	Redis      redis.Config      `envconfig:"REDIS"`
	Kafka      kafka.Config      `envconfig:"KAFKA"`
	Analytics  AnalyticsConfig   `envconfig:"ANALYTICS"`
	ClickHouse click.Config      `envconfig:"CLICKHOUSE"`
	DB         pg.Config         `envconfig:"DB"`
	Mongo      mongo.Config      `envconfig:"MONGO"`
}

// Validate проверяет значения, которые envconfig не может проверить сам.
func (c Config) Validate() error {
	if err := validator.New().Struct(c.Analytics); err != nil {
		return fmt.Errorf("analytics sink %q: %w", c.Analytics.Sink, err)
	}
	if c.Analytics.Sink != SinkNone && !c.Kafka.Enabled {
		return errors.New("analytics sink requires CALCULATOR_KAFKA_ENABLED=true")
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Отсутствующий .env не ошибка, переменные окружения имеют приоритет над файлом.
func LoadCfg() (Config, error) {
	path := os.Getenv(envFileVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

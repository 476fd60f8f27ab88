package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix — префикс переменных окружения: SNORTVIEW_SERVER_PORT перекроет server.port
const EnvPrefix = "SNORTVIEW"

// Драйверы хранилища сессий, настроек, аудита
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config — корневая структура конфигурации SnortView.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Alerts     AlertsConfig     `mapstructure:"alerts"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig описывает настройки HTTP-сервера.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig выбирает, где живут сессии, настройки БД и журнал аудита.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, redis
}

// RedisConfig описывает подключение к Redis.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	StatsTTL time.Duration `mapstructure:"stats_ttl"` // 0 — кэш статистики выключен
}

// DatabaseConfig управляет проверкой соединения со страницы настроек БД.
// По умолчанию проверка имитируется, живой ping к PostgreSQL включается LiveTest.
type DatabaseConfig struct {
	LiveTest       bool          `mapstructure:"live_test"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RetryAttempts  uint          `mapstructure:"retry_attempts"`

	// Настройки Circuit Breaker вокруг живой проверки
	CBMaxRequests uint32        `mapstructure:"cb_max_requests"`
	CBInterval    time.Duration `mapstructure:"cb_interval"`
	CBTimeout     time.Duration `mapstructure:"cb_timeout"`
}

// AuthConfig содержит пути к RSA ключам, настройки JWT и таблицу учетных записей.
type AuthConfig struct {
	PublicKeyPath  string             `mapstructure:"public_key_path"`
	PrivateKeyPath string             `mapstructure:"private_key_path"`
	Issuer         string             `mapstructure:"issuer"`
	TokenTTL       time.Duration      `mapstructure:"token_ttl"`
	BcryptCost     int                `mapstructure:"bcrypt_cost"`
	LoginRate      float64            `mapstructure:"login_rate"` // попыток в секунду
	LoginBurst     int                `mapstructure:"login_burst"`
	Credentials    []CredentialConfig `mapstructure:"credentials"` // пусто — встроенные admin и user
	PublicKey      []byte
	PrivateKey     []byte
}

type CredentialConfig struct {
	ID       int    `mapstructure:"id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
}

// AlertsConfig задает размер и seed синтетического набора алертов.
type AlertsConfig struct {
	Count int    `mapstructure:"count"`
	Seed  uint64 `mapstructure:"seed"`
}

// SimulationConfig — искусственные задержки сервисов, имитирующие медленный бэкенд.
type SimulationConfig struct {
	AlertsDelay   time.Duration `mapstructure:"alerts_delay"`
	StatsDelay    time.Duration `mapstructure:"stats_delay"`
	UsersDelay    time.Duration `mapstructure:"users_delay"`
	MutationDelay time.Duration `mapstructure:"mutation_delay"`
	RegisterDelay time.Duration `mapstructure:"register_delay"`
	TestDelay     time.Duration `mapstructure:"test_delay"`
}

// AuditConfig настраивает буфер журнала действий.
type AuditConfig struct {
	BufferSize    int           `mapstructure:"buffer_size"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	Retain        int           `mapstructure:"retain"`
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig объединяет значения из файла, ENV и дефолтов.
// Пустой path — ищем config.yaml в . и ./configs.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Файла нет — работаем на ENV и дефолтах
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// PEM-ключ может прийти прямо в ENV (Docker/K8s), иначе читаем файл
	cfg.Auth.PublicKey = loadKeyResource(cfg.Auth.PublicKeyPath, EnvPrefix+"_AUTH_PUBLIC_KEY_DATA")
	cfg.Auth.PrivateKey = loadKeyResource(cfg.Auth.PrivateKeyPath, EnvPrefix+"_AUTH_PRIVATE_KEY_DATA")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", StorageMemory)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stats_ttl", 5*time.Minute)

	v.SetDefault("database.live_test", false)
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.retry_attempts", 3)
	v.SetDefault("database.cb_max_requests", 1)
	v.SetDefault("database.cb_interval", 30*time.Second)
	v.SetDefault("database.cb_timeout", 30*time.Second)

	v.SetDefault("auth.public_key_path", "")
	v.SetDefault("auth.private_key_path", "")
	v.SetDefault("auth.issuer", "snortview")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.login_rate", 5)
	v.SetDefault("auth.login_burst", 10)

	v.SetDefault("alerts.count", 1000)
	v.SetDefault("alerts.seed", 1)

	v.SetDefault("simulation.alerts_delay", 0)
	v.SetDefault("simulation.stats_delay", 0)
	v.SetDefault("simulation.users_delay", 0)
	v.SetDefault("simulation.mutation_delay", 0)
	v.SetDefault("simulation.register_delay", 0)
	v.SetDefault("simulation.test_delay", 0)

	v.SetDefault("audit.buffer_size", 1000)
	v.SetDefault("audit.batch_size", 100)
	v.SetDefault("audit.flush_interval", 1*time.Second)
	v.SetDefault("audit.retain", 1000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Alerts.Count < 0 {
		return fmt.Errorf("alerts.count must not be negative")
	}
	for i, cred := range c.Auth.Credentials {
		if cred.Username == "" || cred.Password == "" {
			return fmt.Errorf("auth.credentials[%d]: username and password are required", i)
		}
	}
	return nil
}

func loadKeyResource(path string, envDataKey string) []byte {
	if data := os.Getenv(envDataKey); data != "" {
		return []byte(data)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data
		}
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Gin      GinConfig
	CORS     CORSConfig
	Storage  StorageConfig
	MySQL    MySQLConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Bolt     BoltConfig
	Catalog  CatalogConfig
	Telegram TelegramConfig
	SMTP     SMTPConfig
}

type ServerConfig struct {
	Port              string        `env:"PORT"                        env-default:"8080" validate:"required,numeric"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT"         env-default:"10s"  validate:"gt=0"`
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT"  env-default:"5s"   validate:"gt=0"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT"        env-default:"20s"  validate:"gt=0"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT"         env-default:"60s"  validate:"gt=0"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT"     env-default:"15s"  validate:"gt=0"`
}

func (s ServerConfig) Addr() string { return ":" + s.Port }

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info" validate:"required,oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" env-default:"text" validate:"required,oneof=text json"`
}

type GinConfig struct {
	Mode string `env:"GIN_MODE" env-default:"debug" validate:"required,oneof=debug release test"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS" env-default:"*" env-separator:","`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" env-default:"memory" validate:"required,oneof=memory mysql sqlite postgres bolt"`
}

type MySQLConfig struct {
	// URL takes precedence over the discrete fields; mysql:// URLs and raw DSNs are accepted.
	URL             string        `env:"MYSQL_URL"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	User            string        `env:"DB_USER"              env-default:"root"`
	Password        string        `env:"DB_PASS"`
	Host            string        `env:"DB_HOST"              env-default:"127.0.0.1"`
	Port            int           `env:"DB_PORT"              env-default:"3306"   validate:"min=1,max=65535"`
	Database        string        `env:"DB_NAME"              env-default:"rental_db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    env-default:"10"     validate:"min=1"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    env-default:"5"      validate:"min=0"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"     validate:"gt=0"`
	LogLevel        string        `env:"GORM_LOG_LEVEL"       env-default:"warn"   validate:"oneof=silent error warn info"`
}

type PostgresConfig struct {
	DSN      string `env:"POSTGRES_DSN"`
	Host     string `env:"PG_HOST"     env-default:"localhost"`
	Port     int    `env:"PG_PORT"     env-default:"5432"      validate:"min=1,max=65535"`
	User     string `env:"PG_USER"     env-default:"postgres"`
	Password string `env:"PG_PASSWORD" env-default:"postgres"`
	Database string `env:"PG_DATABASE" env-default:"rental"`
	SSLMode  string `env:"PG_SSLMODE"  env-default:"disable"   validate:"oneof=disable require verify-ca verify-full"`
}

func (p PostgresConfig) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" env-default:"rental.db"`
}

type BoltConfig struct {
	Path    string        `env:"BOLT_PATH"    env-default:"rental.bolt"`
	Timeout time.Duration `env:"BOLT_TIMEOUT" env-default:"1s" validate:"gt=0"`
}

type CatalogConfig struct {
	PropertiesPath string `env:"CATALOG_PROPERTIES_PATH"`
	ReviewsPath    string `env:"CATALOG_REVIEWS_PATH"`
	Seed           bool   `env:"CATALOG_SEED" env-default:"true"`
}

type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

// SMTPConfig drives guest confirmation emails. Leaving it empty logs the
// emails instead of sending them.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	FromName string `env:"SMTP_FROM_NAME" env-default:"Rentals"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

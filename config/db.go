package config

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-backend/catalog"
	"rental-backend/services"
	"rental-backend/storage"
	"rental-backend/storage/boltstore"
	"rental-backend/storage/gormstore"
	"rental-backend/storage/sqlstore"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	q.Del("parseTime")
	q.Del("loc")

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, pass, net.JoinHostPort(u.Hostname(), port), dbName, q.Encode())
	return normalizeDSN(dsn)
}

// normalizeDSN validates dsn and forces time parsing in UTC.
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// resolveMySQLDSN prefers MYSQL_URL, then DATABASE_URL, then the discrete DB_* fields.
func resolveMySQLDSN(c MySQLConfig) (string, error) {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		raw = strings.TrimSpace(c.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return normalizeDSN(raw)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4",
		c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database,
	)
	return normalizeDSN(dsn)
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func connectMySQL(c MySQLConfig, log *slog.Logger) (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN(c)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(c.LogLevel),
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	return db, nil
}

// OpenStore builds the storage driver selected by STORAGE_DRIVER.
func OpenStore(ctx context.Context, cfg *Config, log *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), nil
	case "mysql":
		db, err := connectMySQL(cfg.MySQL, log)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		return gormstore.New(db)
	case "sqlite":
		return sqlstore.Open(ctx, sqlstore.SQLite, cfg.SQLite.Path)
	case "postgres":
		return sqlstore.Open(ctx, sqlstore.Postgres, cfg.Postgres.ConnString())
	case "bolt":
		return boltstore.New(cfg.Bolt.Path, cfg.Bolt.Timeout)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// SeedCatalog loads the sample catalog and reviews and stores whatever is missing.
func SeedCatalog(ctx context.Context, c CatalogConfig, properties *services.PropertyService, reviews *services.ReviewService) error {
	props, err := catalog.Properties(c.PropertiesPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := properties.Seed(ctx, props); err != nil {
		return err
	}

	rs, err := catalog.Reviews(c.ReviewsPath)
	if err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	return reviews.Seed(ctx, rs)
}

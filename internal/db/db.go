package db

import (
	"context"     // Bounded connection attempts
	"errors"      // Error values
	"fmt"         // Error wrapping
	"sync/atomic" // Published handle
	"time"        // Timeouts

	"news_portal/internal/config" // Database settings

	"github.com/glebarez/sqlite"     // Pure Go SQLite driver for GORM
	"github.com/sirupsen/logrus"     // Logrus for structured logging
	"golang.org/x/sync/singleflight" // Collapses concurrent first connects
	"gorm.io/driver/mysql"           // MySQL driver for GORM
	"gorm.io/driver/postgres"        // PostgreSQL driver for GORM
	"gorm.io/gorm"                   // GORM ORM library
	gormlogger "gorm.io/gorm/logger" // GORM log levels
)

// ErrUnsupportedDriver is returned for an unknown DB_DRIVER value
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// OpenFunc opens a database handle; ctx bounds the attempt
type OpenFunc func(ctx context.Context) (*gorm.DB, error)

// Connector lazily opens a single shared database handle.
// Concurrent first calls share one attempt; a failed attempt is not remembered.
type Connector struct {
	open    OpenFunc                // Opens a new handle
	timeout time.Duration           // Bound for one attempt
	group   singleflight.Group      // Deduplicates concurrent attempts
	handle  atomic.Pointer[gorm.DB] // Set once the first attempt succeeds
}

// NewConnector builds a connector for the configured driver
func NewConnector(cfg *config.Config) *Connector {
	return NewConnectorWithOpener(cfg.DBConnectTimeout, func(ctx context.Context) (*gorm.DB, error) {
		return Open(ctx, cfg)
	})
}

// NewConnectorWithOpener builds a connector around a custom opener
func NewConnectorWithOpener(timeout time.Duration, open OpenFunc) *Connector {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Connector{open: open, timeout: timeout}
}

// Get returns the shared handle, connecting on first use.
// The caller stops waiting when ctx is done; the attempt itself keeps its own deadline.
func (c *Connector) Get(ctx context.Context) (*gorm.DB, error) {
	if db := c.handle.Load(); db != nil {
		return db, nil // Fast path once connected
	}
	ch := c.group.DoChan("db", func() (any, error) {
		if db := c.handle.Load(); db != nil {
			return db, nil // Another flight finished first
		}
		attemptCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		db, err := c.open(attemptCtx)
		if err != nil {
			return nil, err
		}
		c.handle.Store(db)
		logrus.Info("Database connected")
		return db, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*gorm.DB), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close releases the handle if one was opened
func (c *Connector) Close() error {
	db := c.handle.Swap(nil)
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialector returns the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	secs := int(cfg.DBConnectTimeout.Seconds())
	if secs <= 0 {
		secs = 5
	}
	switch cfg.DBDriver {
	case "mysql":
		// Data Source Name (DSN) with a dial timeout so a dead server fails fast
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&timeout=%ds",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, defaultPort(cfg.DBPort, "3306"), cfg.DBName, secs)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
			cfg.DBHost, defaultPort(cfg.DBPort, "5432"), cfg.DBUser, cfg.DBPassword, cfg.DBName, secs)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.DBDriver)
}

// Open connects to the configured database and verifies it with a ping bounded by ctx
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := gormlogger.Info
	if cfg.IsProd {
		logLevel = gormlogger.Warn // Only slow queries and errors in production
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true, // Unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1) // Single writer
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

func defaultPort(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}

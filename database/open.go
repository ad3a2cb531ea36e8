package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/priyanshu14077/NeuronPress/config"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// DSN returns DATABASE_URL, or a Supabase connection string built from its parts when DB_TYPE=supa.
func DSN(cfg map[string]string) string {
	if url := config.GetString(cfg, "DATABASE_URL", ""); url != "" {
		return url
	}

	if strings.EqualFold(config.GetString(cfg, "DB_TYPE", ""), "supa") {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		)
	}

	return ""
}

// Open connects to the primary and registers any DATABASE_REPLICA_URLS as read replicas.
func Open(ctx context.Context, cfg map[string]string) (*gorm.DB, error) {
	dsn := DSN(cfg)
	if dsn == "" {
		return nil, errs.NewEnvironmentVariableError("DATABASE_URL")
	}

	gormLog := NewGormLogger(
		log.With().Str("component", "gorm").Logger(),
		logLevel(config.GetString(cfg, "DB_LOG_LEVEL", "warn")),
		time.Duration(config.GetInt(cfg, "DB_SLOW_QUERY_MS", 2000))*time.Millisecond,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormLog,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "database", err)
	}

	maxOpen := config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 20)
	maxIdle := config.GetInt(cfg, "DB_MAX_IDLE_CONNS", 5)

	if replicas := config.GetList(cfg, "DATABASE_REPLICA_URLS"); len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, replica := range replicas {
			dialectors = append(dialectors, postgres.New(postgres.Config{DSN: replica, PreferSimpleProtocol: true}))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(maxOpen).
			SetMaxIdleConns(maxIdle).
			SetConnMaxIdleTime(5 * time.Minute)
		if err := db.Use(resolver); err != nil {
			return nil, errs.NewDatabaseError("register", "read replicas", err)
		}
		log.Info().Int("replicas", len(dialectors)).Msg("read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewDatabaseError("open", "connection pool", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, errs.NewDatabaseError("ping", "database", err)
	}

	return db, nil
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

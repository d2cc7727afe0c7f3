// Package db opens the MySQL-backed user store.
package db

import (
	"fmt"
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"idea_backend/internal/feature/auth/domain/entity"
	"idea_backend/internal/platform/config"
)

// Opener opens a gorm connection from a DSN. Injected so the retry loop
// can be tested without a database.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN assembles the MySQL DSN from the configuration.
func BuildDSN(cfg config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// ConnectWithRetry keeps trying to open the database until it succeeds or
// the timeout elapses. Container orchestration often starts the API before
// MySQL accepts connections.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// Open connects to MySQL and, when configured, migrates the users table.
// Startup cannot proceed without a store, so failures are fatal.
func Open(cfg config.Config) *gorm.DB {
	gormOpen := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, gormOpen)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(&entity.User{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

package main

import (
	"context"                     // Bounded connection
	"news_portal/internal/config" // Custom import path (Config)
	"news_portal/internal/db"     // Custom import path (Database)
	"news_portal/internal/utils"  // Logger

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	utils.SetupLogger(cfg.LogLevel, cfg.IsProd)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	defer cancel()
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("%v", err)
	}
	// Make sure the canonical admin exists
	if _, err := db.EnsureAdmin(conn, db.AdminSeed{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Category: cfg.AdminCategory,
	}); err != nil {
		logrus.Fatalf("admin seed failed: %v", err)
	}
}

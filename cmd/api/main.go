package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	database "github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/db"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/storage"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Orchids Music API Server...")

	// 1. Setup Configuration
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("❌ Auth secret missing: set ORCHIDS_AUTH_JWT_SECRET before starting")
	}

	// 2. Initialize Infrastructure
	db := database.New(cfg)

	// 3. Run Database Migrations + seed data
	db.AutoMigrate()
	database.SeedAdminUser(db.DB, cfg)
	database.SeedDemoTables(db.DB)

	// 4. Storage
	store := storage.New(cfg)

	// 5. Setup Metrics
	browse.RegisterMetrics()
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 6. Browse pipeline: rules, service, background refresher
	var rules *browse.Rules
	if cfg.Browse.RulesFile != "" {
		loaded, err := browse.LoadRules(cfg.Browse.RulesFile)
		if err != nil {
			log.Printf("⚠️ Could not load rules file %s, using defaults: %v", cfg.Browse.RulesFile, err)
		} else {
			rules = loaded
		}
	}
	shelves := browse.New(browse.NewGormSource(db.DB), rules, cfg)

	refresher := browse.NewRefresher(shelves, cfg)
	go refresher.Run(context.Background())

	// 7. Start Server
	// Call New() from the aliased package
	srv := apiserver.New(cfg, db, store, shelves)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)

	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	database "github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/db"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/importer"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Music Library Importer...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	store := storage.New(cfg)
	db := database.New(cfg)

	// 3. Run Database Migrations
	db.AutoMigrate()

	// 4. Setup Metrics
	importer.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		log.Fatal(http.ListenAndServe(cfg.Server.MetricsPort, nil))
	}()

	// 5. Start Worker
	worker := importer.New(cfg, db.DB, store)

	if cfg.Importer.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		worker.RunWatch(ctx)
		return
	}

	if err := worker.Run(); err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}
}

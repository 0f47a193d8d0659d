package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stockpilot/backend-go/internal/alert"
	"github.com/stockpilot/backend-go/internal/cache"
	"github.com/stockpilot/backend-go/internal/config"
	"github.com/stockpilot/backend-go/internal/repository/postgres"
	"github.com/stockpilot/backend-go/internal/service"
	"github.com/stockpilot/backend-go/internal/storage"
)

func main() {
	_ = godotenv.Load()

	dbURL := flag.String("db-url", os.Getenv("DATABASE_URL"), "Database connection string")
	companyID := flag.Int64("company", 0, "Company ID to report on")
	windowDays := flag.Int("window", alert.DefaultWindowDays, "Trailing window in days for the velocity estimate")
	outPath := flag.String("out", "", "Write the CSV to this path (default: stdout)")
	upload := flag.Bool("upload", false, "Upload the CSV to the configured object storage bucket")
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("Database URL is required (use -db-url flag or DATABASE_URL)")
	}
	if *companyID <= 0 {
		log.Fatal("A positive company ID is required (use -company flag)")
	}

	db, err := sqlx.Connect("pgx", *dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	engine := alert.NewEngine(postgres.NewSnapshotRepository(db), *windowDays, 0)
	alertService := service.NewAlertService(engine, cache.NewNoopAlertCache(), *windowDays)

	var reportStorage storage.ObjectStorage
	if *upload {
		s3, err := storage.NewS3Client(config.Load().Storage)
		if err != nil {
			log.Fatalf("Failed to create storage client: %v", err)
		}
		reportStorage = s3
	}
	reportService := service.NewReportService(alertService, reportStorage)

	ctx := context.Background()
	start := time.Now()

	if *upload {
		key, err := reportService.ArchiveCompanyAlerts(ctx, *companyID, time.Now())
		if err != nil {
			log.Fatalf("Failed to archive alert report: %v", err)
		}
		log.Printf("Uploaded alert report as %s in %v", key, time.Since(start))
		return
	}

	payload, err := reportService.ExportCompanyAlerts(ctx, *companyID)
	if err != nil {
		log.Fatalf("Failed to export alert report: %v", err)
	}

	if *outPath == "" {
		if _, err := os.Stdout.Write(payload); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		return
	}

	if err := os.WriteFile(*outPath, payload, 0644); err != nil {
		log.Fatalf("Failed to write report to %s: %v", *outPath, err)
	}
	log.Printf("Wrote alert report to %s in %v", *outPath, time.Since(start))
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"airbnb-report/config"
	"airbnb-report/scraper/insideairbnb"
	"airbnb-report/services"
	"airbnb-report/storage"
	"airbnb-report/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Listings Report Generator starting ===")
	logger.Info("Config — input: %s | output: %s | postgres: %v | fetch-if-missing: %v",
		cfg.InputPath, cfg.OutputPath, cfg.PostgresEnabled, cfg.FetchEnabled)

	if _, err := os.Stat(cfg.InputPath); errors.Is(err, os.ErrNotExist) {
		if !cfg.FetchEnabled {
			logger.Error("Input file %s not found. Place the Inside Airbnb listings CSV there or set FETCH_IF_MISSING=true.", cfg.InputPath)
			os.Exit(1)
		}
		fetcher := insideairbnb.New(cfg, logger)
		if err := fetcher.Fetch(); err != nil {
			logger.Error("Dataset fetch failed: %v", err)
			os.Exit(1)
		}
	}

	listings, err := storage.ReadListings(cfg.InputPath)
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d listings from %s", len(listings), cfg.InputPath)

	if cfg.PostgresEnabled {
		store, err := storage.NewPostgresStore(cfg.DSN(), logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.Write(listings); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Dataset mirrored to PostgreSQL (table: listings)")
		}

		dbListings, err := store.FetchAll()
		if err != nil {
			logger.Error("Failed to fetch listings from DB: %v — reporting from the in-memory dataset", err)
		} else {
			listings = dbListings
		}
	}

	insightSvc := services.NewInsightService(logger)
	report, err := insightSvc.Generate(listings)
	if err != nil {
		logger.Error("Report generation aborted: %v", err)
		os.Exit(1)
	}
	report.Source = filepath.Base(cfg.InputPath)
	report.Vintage = cfg.DataVintage

	reportSvc := services.NewReportService(logger)
	text := reportSvc.Render(report)
	if err := reportSvc.Write(cfg.OutputPath, text); err != nil {
		logger.Error("Failed to write report: %v", err)
		os.Exit(1)
	}

	fmt.Println(text)
}

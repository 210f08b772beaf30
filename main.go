package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sjsage522/contactscraper/config"
	"sjsage522/contactscraper/helpers"
	"sjsage522/contactscraper/internal/crawler"
	"sjsage522/contactscraper/logger"
	"sjsage522/contactscraper/services/export"
	"sjsage522/contactscraper/services/publisher"
	"sjsage522/contactscraper/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("directory_url", cfg.DirectoryURL).
		Int("total_pages", cfg.TotalPages).
		Msg("Starting application")

	// Interrupting the job leaves no output behind
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	w, err := newWorker(cfg, services, helpers.NewLogger(logger.ForDiagnostics()))
	if err != nil {
		services.Cleanup()
		log.Fatal().Err(err).Msg("Failed to create worker")
	}
	if err := w.Run(ctx); err != nil {
		services.Cleanup()
		log.Fatal().Err(err).Msg("Scraping job failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Converter export.Converter
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
		s.Publisher = nil
	}
}

// initializeServices initializes the spreadsheet converter and, when configured, the publisher
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	services := &Services{
		Converter: export.NewExcelConverter(cfg.XLSXPath),
	}

	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)

		logger.Info("Publishing contacts to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services
}

// newWorker wires the fetch, scrape and export pipeline described by cfg
func newWorker(cfg *config.Config, services *Services, log helpers.LoggerInterface) (*worker.Worker, error) {
	policy := crawler.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		AttemptDelay: crawler.DelayRange{
			Min: cfg.AttemptDelayMin.Duration,
			Max: cfg.AttemptDelayMax.Duration,
		},
		Timeout: cfg.RequestTimeout.Duration,
	}

	fetcher := crawler.NewFetcher(policy, log)
	scraper, err := crawler.NewDirectoryScraper(cfg.DirectoryURL, fetcher, log)
	if err != nil {
		return nil, err
	}

	return worker.NewWorker(scraper, services.Converter, services.Publisher, log, worker.Options{
		TotalPages: cfg.TotalPages,
		PageDelay: crawler.DelayRange{
			Min: cfg.PageDelayMin.Duration,
			Max: cfg.PageDelayMax.Duration,
		},
		CSVPath: cfg.CSVPath,
	}), nil
}

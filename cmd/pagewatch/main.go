package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/fileops"
	"github.com/aleister1102/pagewatch/internal/limiter"
	"github.com/aleister1102/pagewatch/internal/logger"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/aleister1102/pagewatch/internal/scraper"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	// Command line flags take precedence over the config file.
	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
		zLogger.Info().Str("mode", gCfg.Mode).Msg("Mode overridden by command line flag")
	}
	if flags.TargetURL != "" {
		gCfg.ScraperConfig.TargetURL = flags.TargetURL
		zLogger.Info().Str("target_url", flags.TargetURL).Msg("Target URL overridden by command line flag")
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	switch gCfg.Mode {
	case config.ModeBatch:
		os.Exit(runBatch(gCfg, zLogger))
	case config.ModeWatch, "":
		os.Exit(runWatch(gCfg, zLogger))
	default:
		zLogger.Fatal().Str("mode", gCfg.Mode).Msg("Unknown mode (watch or batch)")
	}
}

func runWatch(gCfg *config.GlobalConfig, zLogger zerolog.Logger) int {
	if gCfg.ScraperConfig.TargetURL == "" {
		zLogger.Fatal().Msg("Watch mode requires scraper_config.target_url or the --url flag")
	}

	builder := scraper.NewScrapeServiceBuilder(gCfg.ScraperConfig, gCfg.HTTPConfig, zLogger)

	if gCfg.StorageConfig.SQLiteDBPath != "" {
		store, err := datastore.NewStateStore(gCfg.StorageConfig.SQLiteDBPath, zLogger)
		if err != nil {
			zLogger.Fatal().Err(err).Str("path", gCfg.StorageConfig.SQLiteDBPath).Msg("Failed to open state store")
		}
		defer store.Close()
		builder.WithStateStore(store)
	}
	if gCfg.StorageConfig.ArchiveDir != "" {
		builder.WithArchiver(datastore.NewHistoryArchiver(gCfg.StorageConfig.ArchiveDir, zLogger))
	}
	if gCfg.LimiterConfig.Enabled {
		builder.WithResourceLimiter(limiter.NewResourceLimiter(gCfg.LimiterConfig, zLogger))
	}

	service, err := builder.Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build scrape service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, initiating graceful shutdown")
		service.Stop()
		cancel()
	}()

	summary := service.Run(ctx)

	out, _ := json.Marshal(summary)
	zLogger.Info().RawJSON("summary", out).Msg("Watch run finished")

	if summary.Status == models.WatchStatusInterrupted {
		return 130
	}
	return 0
}

func runBatch(gCfg *config.GlobalConfig, zLogger zerolog.Logger) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, stopping batch at the next file boundary")
		cancel()
	}()

	operator := fileops.NewBatchOperator(gCfg.BatchConfig, zLogger)
	summary, err := operator.Execute(ctx)
	if err != nil {
		zLogger.Error().Err(err).Msg("Batch operation rejected")
		return 2
	}

	zLogger.Info().
		Str("operation", string(summary.Operation)).
		Int("total_files", summary.TotalFiles).
		Int("success", summary.SuccessCount).
		Int("failure", summary.FailureCount).
		Dur("duration", summary.Duration).
		Msg("Batch run finished")

	if summary.FailureCount > 0 {
		return 1
	}
	return 0
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/linkchecker/internal/checker"
	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/logger"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := ParseFlags()

	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		bootLogger.Error().Err(err).Str("path", flags.GlobalConfigFile).Msg("Could not load global config")
		return 1
	}

	if flags.Workers > 0 {
		gCfg.CheckerConfig.Workers = flags.Workers
	}
	if flags.OutputDir != "" {
		gCfg.LedgerConfig.OutputDir = flags.OutputDir
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		bootLogger.Error().Err(err).Msg("Configuration validation failed")
		return 1
	}

	runID := checker.NewRunID()
	appLogger, err := logger.NewWithRunID(gCfg.LogConfig, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		return 1
	}
	defer appLogger.Close()
	zLogger := *appLogger.GetZerolog()

	zLogger.Info().
		Str("input", flags.InputFile).
		Int("workers", gCfg.CheckerConfig.Workers).
		Str("output_dir", gCfg.LedgerConfig.OutputDir).
		Msg("Link checker starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := checker.NewCheckerBuilder(gCfg, zLogger).Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize checker")
		return 1
	}
	defer func() {
		if err := c.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to close checker cleanly")
		}
	}()

	if _, err := c.CheckFile(ctx, runID, flags.InputFile); err != nil {
		if errors.Is(err, context.Canceled) {
			zLogger.Warn().Msg("Run interrupted by signal")
			return 130
		}
		zLogger.Error().Err(err).Msg("Run failed")
		return 1
	}

	return 0
}

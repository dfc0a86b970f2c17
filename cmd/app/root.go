package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/out/backend"
	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/services/availability_service"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "app",
		Short:         "Photographer availability resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "availability-resolver %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}

// loadConfigAndLogger загружает конфигурацию и создает логгер приложения.
// В quiet-режиме пишутся только ошибки.
func loadConfigAndLogger(quiet bool) (*config.Config, *logger.ConsoleLogger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.App.LogLevel
	if quiet {
		level = string(out.LogLevelError)
	}

	consoleLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, consoleLogger, nil
}

// newOneShotService собирает сервис для разовых проверок из CLI: без кэша, логи в stderr
func newOneShotService(quiet bool) (*config.Config, *availability_service.AvailabilityService, error) {
	cfg, consoleLogger, err := loadConfigAndLogger(quiet)
	if err != nil {
		return nil, nil, err
	}
	consoleLogger.SetOutput(os.Stderr)

	backendAdapter := backend.NewBackendAdapter(cfg, consoleLogger)
	service := availability_service.NewAvailabilityService(backendAdapter, nil, consoleLogger, cfg)

	return cfg, service, nil
}

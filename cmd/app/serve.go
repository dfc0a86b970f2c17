package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/in/http"
	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/out/backend"
	"github.com/suchimauz/photographer-availability-resolver/internal/adapters/out/cache"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/services/availability_service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server and availability change listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, mainLogger, err := loadConfigAndLogger(false)
	if err != nil {
		return err
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"maxConcurrency":  cfg.Resolver.MaxConcurrency,
	})

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger)

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger)
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}
		if err := cacheAdapter.StartJanitor(); err != nil {
			return err
		}
		defer cacheAdapter.StopJanitor()
		cachePort = cacheAdapter
	} else {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
	}

	// Инициализация сервиса
	availabilityService := availability_service.NewAvailabilityService(
		backendAdapter,
		cachePort,
		mainLogger,
		cfg,
	)

	// Настройка HTTP сервера
	router := gin.New()
	router.Use(gin.Recovery())
	controller := http.NewAvailabilityController(availabilityService, cfg, mainLogger)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewAvailabilityListener(availabilityService, cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	} else {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
	}

	server := &nethttp.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("app.shutdown.initiated", out.LogFields{})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("app.shutdown.completed", out.LogFields{})

	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/piresc/kirimin/internal/pkg/clock"
	"github.com/piresc/kirimin/internal/pkg/config"
	"github.com/piresc/kirimin/internal/pkg/database"
	"github.com/piresc/kirimin/internal/pkg/health"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/middleware"
	"github.com/piresc/kirimin/internal/pkg/nats"
	nrpkg "github.com/piresc/kirimin/internal/pkg/newrelic"
	"github.com/piresc/kirimin/internal/pkg/nsq"
	"github.com/piresc/kirimin/internal/pkg/otp"
	"github.com/piresc/kirimin/internal/pkg/retry"
	"github.com/piresc/kirimin/internal/pkg/server"
	"github.com/piresc/kirimin/internal/pkg/websocket"
	"github.com/piresc/kirimin/services/trips/gateway"
	"github.com/piresc/kirimin/services/trips/handler"
	"github.com/piresc/kirimin/services/trips/repository"
	"github.com/piresc/kirimin/services/trips/usecase"
)

func main() {
	appName := "trips-service"
	configPath := "config/trips.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// PostgreSQL holds trips, agents and the ledger
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	if err := postgresClient.Migrate(ctx); err != nil {
		zapLogger.Fatal("Failed to apply migrations", logger.Err(err))
	}

	// Redis holds the geo index, heartbeats, candidate pools and rate limits
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	natsClient, err := nats.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}

	var producer gateway.Producer = nsq.Discard{}
	var nsqProducer *nsq.Producer
	if configs.NSQ.Enabled {
		nsqProducer, err = nsq.NewProducer(configs.NSQ.Address)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		producer = nsqProducer
	}

	// Repositories
	tripRepo := repository.NewTripRepository(postgresClient.GetDB())
	agentRepo := repository.NewAgentRepository(postgresClient.GetDB())
	locationRepo := repository.NewLocationRepository(redisClient)

	// Gateway
	tripGW := gateway.NewTripGW(natsClient, producer, retry.NewWithDefaults())

	// Usecase
	clk := clock.Real()
	otpService := otp.NewService(configs.OTP, otp.WithClock(clk))
	tripUC, err := usecase.NewTripUC(configs, tripRepo, agentRepo, locationRepo, tripGW, otpService, clk)
	if err != nil {
		zapLogger.Fatal("Failed to initialize trip use case", logger.Err(err))
	}

	// Handlers
	wsManager := websocket.NewManager(configs.JWT)
	tripHandler := handler.NewHandler(tripUC, wsManager, natsClient, redisClient.GetClient(), configs, nrApp)
	if err := tripHandler.StartConsumers(); err != nil {
		zapLogger.Fatal("Failed to start fan-out consumer", logger.Err(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Panic recovery first so every later middleware is covered
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	healthService := health.NewService(appName)
	healthService.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))
	healthService.AddChecker("redis", health.CheckerFunc(redisClient.Ping))
	healthService.AddChecker("nats", health.CheckerFunc(func(context.Context) error {
		if !natsClient.IsConnected() {
			return errors.New("nats connection is down")
		}
		return nil
	}))
	health.RegisterHealthEndpoints(e, healthService)

	tripHandler.RegisterRoutes(e)

	addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
	srv := server.NewGracefulServer(e, zapLogger, addr, time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	// Cleanups run in reverse order
	srv.Register("newrelic", func(context.Context) error {
		if nrApp != nil {
			nrApp.Shutdown(10 * time.Second)
		}
		return nil
	})
	srv.Register("postgres", func(context.Context) error {
		postgresClient.Close()
		return nil
	})
	srv.Register("redis", func(context.Context) error { return redisClient.Close() })
	srv.Register("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})
	srv.Register("nsq", func(context.Context) error {
		if nsqProducer != nil {
			nsqProducer.Stop()
		}
		return nil
	})
	srv.Register("settlements", tripGW.Close)
	srv.Register("fanout", func(context.Context) error {
		tripHandler.StopConsumers()
		return nil
	})

	runErr := srv.Run(ctx)
	zapLogger.Info("Server exiting")
	_ = zapLogger.Close()
	if runErr != nil {
		os.Exit(1)
	}
}

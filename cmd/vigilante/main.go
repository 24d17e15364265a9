package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/vigilante/internal/pkg/circuitbreaker"
	"github.com/piresc/vigilante/internal/pkg/config"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/health"
	httpclient "github.com/piresc/vigilante/internal/pkg/http"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	natspkg "github.com/piresc/vigilante/internal/pkg/nats"
	nrpkg "github.com/piresc/vigilante/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/vigilante/internal/pkg/nsq"
	"github.com/piresc/vigilante/internal/pkg/server"
	wspkg "github.com/piresc/vigilante/internal/pkg/websocket"
	copilotgw "github.com/piresc/vigilante/services/copilot/gateway"
	"github.com/piresc/vigilante/services/engine"
	"github.com/piresc/vigilante/services/engine/handler"
	busHandler "github.com/piresc/vigilante/services/engine/handler/bus"
	httpHandler "github.com/piresc/vigilante/services/engine/handler/http"
	"github.com/piresc/vigilante/services/hazard"
	hazardgw "github.com/piresc/vigilante/services/hazard/gateway"
	"github.com/piresc/vigilante/services/hazard/index"
	hazardrepo "github.com/piresc/vigilante/services/hazard/repository"
	"github.com/piresc/vigilante/services/hazard/usecase"
	prefrepo "github.com/piresc/vigilante/services/preferences/repository"
	roadinfogw "github.com/piresc/vigilante/services/roadinfo/gateway"
)

func main() {
	appName := "vigilante"
	configs := config.InitConfig(".env")

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	instanceID := uuid.NewString()
	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("instance_id", instanceID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthSvc := health.NewService(zapLogger)

	// Redis holds preferences, driver alerts and rate limit counters
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	healthSvc.AddChecker("redis", health.RedisChecker(redisClient))

	var catalog hazard.CatalogRepo
	var postgresClient *database.PostgresClient
	if configs.Catalog.Source == "postgres" {
		postgresClient, err = database.NewPostgresClient(configs.Database)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		healthSvc.AddChecker("postgres", health.PostgresChecker(postgresClient))
		catalog = hazardrepo.NewPostgresCatalog(postgresClient)
	} else {
		catalog = hazardrepo.NewFileCatalog(configs.Catalog.FilePath, nil)
	}

	// Event bus
	var (
		bus          engine.Publisher
		natsClient   *natspkg.Client
		natsConsumer []*natspkg.Consumer
		nsqProducer  *nsqpkg.Producer
		nsqConsumer  []*nsqpkg.Consumer
	)
	switch configs.EventBus.Driver {
	case "nsq":
		nsqProducer, err = nsqpkg.NewProducer(configs.NSQ.NSQDAddress)
		if err != nil {
			logger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		bus = nsqProducer
	default:
		natsClient, err = natspkg.NewClient(configs.NATS.URL, appName+"-"+instanceID)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		healthSvc.AddChecker("nats", health.NATSChecker(natsClient))
		bus = natspkg.NewProducerFromClient(natsClient)
	}

	// Hazards
	hazardIndex := index.New(nil)
	alertRepo := hazardrepo.NewAlertRepository(redisClient, nil)
	hazardGW := hazardgw.NewHazardGW(bus)
	hazardUC := usecase.NewHazardUC(hazardIndex, alertRepo, catalog, hazardGW, configs.Engine, nil)

	loaded, err := hazardUC.LoadCatalog(ctx)
	if err != nil {
		logger.Fatal("Failed to load hazard catalog", logger.Err(err))
	}
	logger.Info("Hazard catalog loaded", logger.Int("hazards", loaded))

	prefsRepo := prefrepo.NewPreferencesRepository(redisClient)

	// Providers
	breakers := circuitbreaker.NewManager(zapLogger)
	weather := roadinfogw.NewWeatherGW(
		httpclient.NewEnhancedClient(zapLogger, "weather", configs.Weather.Timeout), configs.Weather)
	route := roadinfogw.NewRouteGW(
		httpclient.NewEnhancedClient(zapLogger, "route", configs.Route.Timeout), configs.Route)
	generators := copilotgw.NewGeminiFactory(configs.Gemini, breakers)

	// Engine
	wsManager := wspkg.NewManager()
	eng := engine.New(configs.Engine, engine.Deps{
		Index:       hazardIndex,
		Hazards:     hazardUC,
		Preferences: prefsRepo,
		Weather:     weather,
		Generators:  generators,
		Sink:        engine.NewSink(wsManager, bus),
		APM:         nrApp,
	})
	eng.Start()

	// Bus consumers
	consumers := busHandler.NewHandler(eng, hazardUC)
	switch {
	case natsClient != nil:
		natsConsumer, err = consumers.StartNATS(natsClient, appName, instanceID)
	default:
		nsqConsumer, err = consumers.StartNSQ(configs.NSQ, instanceID)
	}
	if err != nil {
		logger.Fatal("Failed to initialize bus consumers", logger.Err(err))
	}

	// HTTP
	api := httpHandler.NewHandler(eng, hazardUC, prefsRepo, weather, route, configs.Engine.DefaultRadiusMeters)
	routes := handler.NewHTTPHandler(api, wsManager, redisClient, configs)

	e := echo.New()
	e.HideBanner = true
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthSvc)
	routes.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	srv.OnShutdown("bus-consumers", func(context.Context) error {
		for _, c := range natsConsumer {
			_ = c.Stop()
		}
		for _, c := range nsqConsumer {
			c.Stop()
		}
		return nil
	})
	srv.OnShutdown("engine", eng.Stop)
	srv.OnShutdown("websocket", func(context.Context) error {
		wsManager.CloseAll()
		return nil
	})
	srv.OnShutdown("event-bus", func(context.Context) error {
		if nsqProducer != nil {
			nsqProducer.Stop()
		}
		if natsClient != nil {
			natsClient.Close()
		}
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return redisClient.Close()
	})
	if postgresClient != nil {
		srv.OnShutdown("postgres", func(context.Context) error {
			return postgresClient.Close()
		})
	}
	if nrApp != nil {
		srv.OnShutdown("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server stopped with error", logger.Err(err))
	}
}

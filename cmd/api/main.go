package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "github.com/YCN-AFS/LandmarkNavigator/docs"
	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/config"
	"github.com/YCN-AFS/LandmarkNavigator/internal/handlers"
	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
	"github.com/YCN-AFS/LandmarkNavigator/internal/middleware"
	"github.com/YCN-AFS/LandmarkNavigator/internal/provider"
	"github.com/YCN-AFS/LandmarkNavigator/internal/services"
	"github.com/YCN-AFS/LandmarkNavigator/internal/store"
	"github.com/YCN-AFS/LandmarkNavigator/internal/telemetry"
)

const serviceName = "landmarknavigator-api"

// @title LandmarkNavigator API
// @version 1.0.0
// @description Map exploration backend serving landmarks by viewport, roads by area and free-text page search.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	logger.Init()
	defer logger.Sync()
	log := logger.GetLogger("main")

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	instanceID := uuid.NewString()
	log = log.With("instance_id", instanceID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerShutdown, err := telemetry.InitTracer(ctx, serviceName, cfg.SignozEndpoint)
	if err != nil {
		log.Warnw("failed to initialize tracer", "error", err)
	}
	defer func() {
		if err := tracerShutdown(context.Background()); err != nil {
			log.Warnw("error shutting down tracer", "error", err)
		}
	}()

	meterShutdown, err := telemetry.InitMeter(ctx, serviceName, cfg.SignozEndpoint)
	if err != nil {
		log.Warnw("failed to initialize metrics", "error", err)
	}
	defer func() {
		if err := meterShutdown(context.Background()); err != nil {
			log.Warnw("error shutting down metrics", "error", err)
		}
	}()

	providers := config.DefaultProviders(cfg)
	if cfg.ProvidersFile != "" {
		providers, err = config.LoadProviders(cfg.ProvidersFile, config.DefaultProviders(cfg))
		if err != nil {
			log.Fatalw("failed to load provider settings", "path", cfg.ProvidersFile, "error", err)
		}
	}
	registry := config.NewRegistry(providers)

	st := store.New()
	ca := cache.New(cfg.CacheTTL())

	wiki := provider.NewWikiSource(registry, cfg.HTTPUserAgent)
	landmarkChain := provider.NewLandmarkChain(wiki)
	roadChain := provider.NewRoadChain(
		provider.NewOverpassSource(registry, cfg.HTTPUserAgent),
		provider.NewOverpassFallbackSource(registry, cfg.HTTPUserAgent),
		provider.NewFixtureSource(),
	)
	searchChain := provider.NewSearchChain(wiki)

	landmarkService := services.NewLandmarkService(ca, st, landmarkChain)
	roadService := services.NewRoadService(ca, st, roadChain, registry)
	searchService := services.NewSearchService(ca, searchChain)

	app := fiber.New(fiber.Config{
		AppName:      "LandmarkNavigator API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "Asia/Ho_Chi_Minh",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: serviceName,
		Skip: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Content-Type, DNT, Origin, User-Agent, X-Requested-With, X-API-Key, If-None-Match",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type, Etag",
		MaxAge:           86400,
	}))

	status := handlers.NewStatusHandler(instanceID, cfg.ServerEnv, st, ca, roadChain.SourceNames())
	setupRoutes(app, cfg, st, ca, landmarkService, roadService, searchService, status)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ca.Run(gctx, cfg.SweepInterval())
		return nil
	})

	if cfg.ProvidersFile != "" {
		g.Go(func() error {
			return config.WatchProviders(gctx, cfg.ProvidersFile, config.DefaultProviders(cfg), registry.Swap)
		})
	}

	g.Go(func() error {
		log.Infow("server starting", "port", cfg.ServerPort, "env", cfg.ServerEnv)
		return app.Listen(":" + cfg.ServerPort)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("server exited", "error", err)
	}
	log.Info("server stopped")
}

func setupRoutes(
	app *fiber.App,
	cfg *config.Config,
	st *store.Store,
	ca *cache.Cache,
	landmarkService *services.LandmarkService,
	roadService *services.RoadService,
	searchService *services.SearchService,
	status *handlers.StatusHandler,
) {
	// Swagger UI
	app.Get("/v1/docs/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint, reachable from internal networks only
	app.Get("/metrics", middleware.InternalOnly(), middleware.PrometheusHandler())

	// Health check endpoints for k8s probes
	handlers.SetupHealthRoutes(app, st, ca)

	v1 := app.Group("/v1")
	handlers.SetupLandmarkRoutes(v1, landmarkService)
	handlers.SetupRoadRoutes(v1, roadService)
	handlers.SetupSearchRoutes(v1, searchService)
	handlers.SetupStatusRoutes(v1, status)
	handlers.SetupAdminRoutes(v1, cfg, ca)
}

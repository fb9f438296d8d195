package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/middleware"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/routes"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/actionitem"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/backup"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/dailywork"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/objective"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/report"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/settings"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/cache"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/mongodb"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/migrations"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/config"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/logger"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Connect to postgres and run migrations
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Redis is optional; cached reads fall back to the database
	redisClient := cache.NewClient(cfg)
	defer redisClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx); err != nil {
		log.Warn("Redis unavailable, caching disabled", zap.Error(err))
	}
	cancelPing()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	objectiveRepo := objective.NewRepository(db)
	actionItemRepo := actionitem.NewRepository(db)
	dailyWorkRepo := dailywork.NewRepository(db)

	// Initialize services
	userService := user.NewService(userRepo)
	settingsService := settings.NewService(settingsRepo, redisClient)
	objectiveService := objective.NewService(objectiveRepo, settingsService,
		cfg.Program.StartTime(), cfg.Program.Year)
	actionItemService := actionitem.NewService(actionItemRepo)
	dailyWorkService := dailywork.NewService(dailyWorkRepo)
	reportService := report.NewService(objectiveService, actionItemService, userRepo, redisClient)

	// The postgres adapter always backs the backup reader. The mongo adapter
	// is only registered when a URI is configured; restores targeting it fail
	// cleanly otherwise.
	pgAdapter := backup.NewPostgresAdapter(db)
	adapters := []backup.StoreAdapter{pgAdapter}

	mongoCtx, cancelMongo := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, err := mongodb.Connect(mongoCtx, cfg)
	cancelMongo()
	switch {
	case err == nil:
		defer mongoClient.Disconnect(context.Background())
		adapters = append(adapters, backup.NewMongoAdapter(mongodb.Database(mongoClient, cfg)))
		log.Info("MongoDB restore target configured")
	case errors.Is(err, mongodb.ErrNotConfigured):
		log.Info("MongoDB not configured, document-store restores disabled")
	default:
		log.Warn("MongoDB connection failed, document-store restores disabled", zap.Error(err))
	}

	backupService := backup.NewService(pgAdapter, adapters...)

	if cfg.Backup.SnapshotEnabled {
		snapshotter := backup.NewSnapshotter(backupService, cfg.Backup.SnapshotDir, log)
		go snapshotter.Start()
		log.Info("Nightly snapshot scheduler started", zap.String("dir", cfg.Backup.SnapshotDir))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, settingsService, cfg.Auth)
	userHandler := handlers.NewUserHandler(userService)
	objectiveHandler := handlers.NewObjectiveHandler(objectiveService)
	actionItemHandler := handlers.NewActionItemHandler(actionItemService)
	dailyWorkHandler := handlers.NewDailyWorkHandler(dailyWorkService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	backupHandler := handlers.NewBackupHandler(backupService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Register routes
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, userService)

	routes.SetupHealthRoutes(router)
	routes.NewAuthRoutes(authHandler, authMiddleware).RegisterRoutes(router)
	routes.NewUserRoutes(userHandler, authMiddleware).RegisterRoutes(router)
	routes.NewObjectiveRoutes(objectiveHandler, authMiddleware).RegisterRoutes(router)
	routes.NewActionItemRoutes(actionItemHandler, authMiddleware).RegisterRoutes(router)
	routes.NewDailyWorkRoutes(dailyWorkHandler, authMiddleware).RegisterRoutes(router)
	routes.NewSettingsRoutes(settingsHandler, authMiddleware).RegisterRoutes(router)
	routes.NewBackupRoutes(backupHandler, authMiddleware).RegisterRoutes(router)
	routes.NewReportRoutes(reportHandler, authMiddleware).RegisterRoutes(router)
	log.Info("Routes registered")

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

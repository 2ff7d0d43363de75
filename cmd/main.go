package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/disaster_response_system/internal/auth"
	"github.com/shenikar/disaster_response_system/internal/authz"
	"github.com/shenikar/disaster_response_system/internal/config"
	v1 "github.com/shenikar/disaster_response_system/internal/handler/http/v1"
	"github.com/shenikar/disaster_response_system/internal/ratelimit"
	"github.com/shenikar/disaster_response_system/internal/repository"
	"github.com/shenikar/disaster_response_system/internal/service"
	"github.com/shenikar/disaster_response_system/internal/webhook"
	"github.com/shenikar/disaster_response_system/pkg/logger"
	"github.com/shenikar/disaster_response_system/pkg/postgres"
	redisclient "github.com/shenikar/disaster_response_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/disaster_response_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Disaster Response System API
// @version 1.0
// @description Disaster response coordination: incident reporting, resource ledger, alerts, zones and a situational dashboard.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.ExposeHeaders = []string{"Retry-After"}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, nil)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, postgres.Options{
		MaxConns:        10,
		MaxConnIdleTime: 5 * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool)
	resourceRepo := repository.NewResourceRepository(dbpool)
	alertRepo := repository.NewAlertRepository(dbpool)
	zoneRepo := repository.NewZoneRepository(dbpool)
	userRepo := repository.NewUserRepository(dbpool)

	// Политика доступа и токены
	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		log.Fatalf("Failed to build access policy: %v", err)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Вебхуки включаются только при заданном WEBHOOK_URL
	var publisher webhook.WebhookPublisher = webhook.NopPublisher{}
	var workerDone <-chan struct{}
	if cfg.WebhookURL != "" {
		publisher = webhook.NewRedisWebhookPublisher(redisClient)
		workerDone = webhook.NewWebhookWorker(redisClient, log, cfg).Start(ctx)
	} else {
		log.Info("WEBHOOK_URL is not set, incident events will not be delivered")
	}

	// Инициализация сервисов
	services := v1.Services{
		Auth:      service.NewAuthService(userRepo, tokens, log),
		Incidents: service.NewIncidentService(incidentRepo, authorizer, publisher, log),
		Resources: service.NewResourceService(resourceRepo, log),
		Alerts:    service.NewAlertService(alertRepo, log),
		Zones:     service.NewZoneService(zoneRepo, log),
		Users:     service.NewUserService(userRepo, log),
		Dashboard: service.NewDashboardService(incidentRepo, resourceRepo, alertRepo, zoneRepo, log),
		Admin:     service.NewAdminService(userRepo, incidentRepo, resourceRepo, alertRepo, log),
	}

	// Начальные данные
	seeder := service.NewSeeder(userRepo, resourceRepo, alertRepo, zoneRepo, service.AdminAccount{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, log)
	if err := seeder.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.ReportRateLimit, cfg.ReportRateWindow)

	// Инициализация хэндлеров
	handler := v1.NewHandler(services, authorizer, limiter, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg)))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Остановка воркера вебхуков
	cancel()
	if cfg.WebhookURL != "" {
		<-workerDone
	}

	log.Info("Server gracefully stopped")
}

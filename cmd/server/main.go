package main

import (
	"log"
	"net/http"

	"autostats/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"autostats/internal/auth"
	"autostats/internal/cache"
	"autostats/internal/config"
	"autostats/internal/db"
	"autostats/internal/handler"
	"autostats/internal/model"
	"autostats/internal/repository"
	"autostats/internal/router"
	"autostats/internal/service"
)

// @title AutoStats API
// @version 1.0
// @description Vehicle service-history tracking API with JWT authentication and PDF export.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vehicle{},
		&model.ServiceRecord{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	recordRepo := repository.NewServiceRecordRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	vehicleService := service.NewVehicleService(vehicleRepo)
	recordService := service.NewServiceRecordService(vehicleRepo, recordRepo)
	reportService := service.NewReportService(vehicleService, recordRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	recordHandler := handler.NewServiceRecordHandler(recordService, reportService)

	// Register routes
	router.Register(e, cfg, authHandler, vehicleHandler, recordHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

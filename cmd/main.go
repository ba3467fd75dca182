package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"tienda/internal/caching"
	"tienda/internal/config"
	"tienda/internal/db"
	"tienda/internal/handlers"
	"tienda/internal/jobs"
	"tienda/internal/jobs/background"
	"tienda/internal/middleware"
	"tienda/internal/repositories"
	"tienda/internal/services"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(cfg.Database.URL(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool, err := db.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	var cacheSvc caching.CacheService
	if cfg.Redis.Host != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, logger)
		if err := cacheSvc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			cacheSvc = nil
		}
	}

	// Repositories
	customerRepo := repositories.NewCustomerRepo(pool)
	locationRepo := repositories.NewLocationRepo(pool)
	posRepo := repositories.NewPointOfSaleRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	saleRepo := repositories.NewSaleRepo(pool)

	// Services
	customerSvc := services.NewCustomerService(customerRepo)
	locationSvc := services.NewLocationService(locationRepo)
	posSvc := services.NewPointOfSaleService(posRepo, locationRepo)
	productSvc := services.NewProductService(productRepo, cacheSvc, cfg.Redis.TTL, logger)
	saleSvc := services.NewSaleService(pool, saleRepo, customerRepo, posRepo, productRepo, cacheSvc, logger)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(cfg.Security)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	locationHandlers := handlers.NewLocationHandlers(locationSvc, posSvc)
	posHandlers := handlers.NewPointOfSaleHandlers(posSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	saleHandlers := handlers.NewSaleHandlers(saleSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, cfg.App.Version)

	e := echo.New()
	e.HideBanner = true
	e.Debug = !cfg.IsProduction()
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	registerRoutes(e, cfg, authHandlers, customerHandlers, locationHandlers, posHandlers, productHandlers, saleHandlers, healthHandlers)

	// Background jobs
	var scheduler *background.Scheduler
	if cfg.Jobs.Enabled {
		alertSvc := jobs.NewStockAlertService(productRepo, cfg.Jobs.LowStockThreshold, logger)
		scheduler, err = background.NewScheduler(alertSvc, cfg.Jobs, logger)
		if err != nil {
			logger.Fatal("failed to create job scheduler", zap.Error(err))
		}
		scheduler.Start()
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			logger.Error("failed to stop job scheduler", zap.Error(err))
		}
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func registerRoutes(
	e *echo.Echo,
	cfg *config.Config,
	authHandlers *handlers.AuthHandlers,
	customerHandlers *handlers.CustomerHandlers,
	locationHandlers *handlers.LocationHandlers,
	posHandlers *handlers.PointOfSaleHandlers,
	productHandlers *handlers.ProductHandlers,
	saleHandlers *handlers.SaleHandlers,
	healthHandlers *handlers.HealthHandlers,
) {
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/health/detailed", healthHandlers.Detailed)

	v1 := e.Group("/v1")
	v1.POST("/auth/login", authHandlers.Login)

	protected := v1.Group("", middleware.JWTMiddleware(cfg.Security.JWTSecret))

	customers := protected.Group("/customers")
	customers.POST("", customerHandlers.CreateCustomer)
	customers.GET("", customerHandlers.ListCustomers)
	customers.GET("/:id", customerHandlers.GetCustomer)
	customers.PUT("/:id", customerHandlers.UpdateCustomer)
	customers.DELETE("/:id", customerHandlers.DeleteCustomer)

	locations := protected.Group("/locations")
	locations.POST("", locationHandlers.CreateLocation)
	locations.GET("", locationHandlers.ListLocations)
	locations.GET("/:id", locationHandlers.GetLocation)
	locations.PUT("/:id", locationHandlers.UpdateLocation)
	locations.DELETE("/:id", locationHandlers.DeleteLocation)
	locations.GET("/:id/points-of-sale", locationHandlers.ListLocationPointsOfSale)

	pointsOfSale := protected.Group("/points-of-sale")
	pointsOfSale.POST("", posHandlers.CreatePointOfSale)
	pointsOfSale.GET("", posHandlers.ListPointsOfSale)
	pointsOfSale.GET("/:id", posHandlers.GetPointOfSale)
	pointsOfSale.PUT("/:id", posHandlers.UpdatePointOfSale)
	pointsOfSale.DELETE("/:id", posHandlers.DeletePointOfSale)

	products := protected.Group("/products")
	products.POST("", productHandlers.CreateProduct)
	products.GET("", productHandlers.ListProducts)
	products.GET("/search", productHandlers.SearchProducts)
	products.GET("/:id", productHandlers.GetProduct)
	products.PUT("/:id", productHandlers.UpdateProduct)
	products.DELETE("/:id", productHandlers.DeleteProduct)

	sales := protected.Group("/sales")
	sales.POST("", saleHandlers.CreateSale)
	sales.GET("", saleHandlers.ListSales)
	sales.GET("/:id", saleHandlers.GetSale)
	sales.GET("/customer/:customerId", saleHandlers.ListCustomerSales)
	sales.GET("/customer/:customerId/summary", saleHandlers.CustomerSaleSummary)
}

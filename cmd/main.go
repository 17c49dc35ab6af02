package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"corpsite/internal/caching"
	"corpsite/internal/dashboard"
	"corpsite/internal/handlers"
	"corpsite/internal/jobs/background"
	"corpsite/internal/middleware"
	"corpsite/internal/repositories"
	"corpsite/internal/services"
	"corpsite/pkg/database"
)

const version = "1.0.0"

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using generated secret (tokens will not survive restarts)")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"
	mediaBucket := os.Getenv("MEDIA_BUCKET")
	if mediaBucket == "" {
		mediaBucket = "corpsite-media"
	}

	mediaSvc, err := services.NewMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucketExists(context.Background(), mediaBucket); err != nil {
		log.Printf("WARNING: could not ensure media bucket exists: %v", err)
	}

	// Repositories
	registrationRepo := repositories.NewRegistrationRepo(pool)
	dashboardRepo := repositories.NewDashboardRepo(pool)
	companyRepo := repositories.NewCompanyRepo(pool)
	serviceRepo := repositories.NewServiceRepo(pool)
	contactRepo := repositories.NewContactRepo(pool)
	reviewRepo := repositories.NewReviewRepo(pool)
	footerRepo := repositories.NewFooterRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	clock := clockwork.NewRealClock()

	// Services
	registrationSvc := services.NewRegistrationService(registrationRepo, clock)
	companySvc := services.NewCompanyService(companyRepo, cacheSvc)
	catalogSvc := services.NewCatalogService(serviceRepo, cacheSvc, mediaSvc, mediaBucket)
	contactSvc := services.NewContactService(contactRepo, serviceRepo)
	reviewSvc := services.NewReviewService(reviewRepo)
	footerSvc := services.NewFooterService(footerRepo)
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, 15*time.Minute, 7*24*time.Hour)
	dashboardSvc := dashboard.NewService(dashboardRepo, contactRepo, serviceRepo, reviewRepo, registrationRepo, userRepo, clock)

	// Handlers
	registrationHandlers := handlers.NewRegistrationHandlers(registrationSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc)
	companyHandlers := handlers.NewCompanyHandlers(companySvc)
	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc)
	contactHandlers := handlers.NewContactHandlers(contactSvc)
	reviewHandlers := handlers.NewReviewHandlers(reviewSvc)
	footerHandlers := handlers.NewFooterHandlers(footerSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	scheduler := background.NewJobScheduler(registrationSvc, dashboardSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validator: validator.New()}

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	// Public site routes, no auth required.
	e.GET("/company-info", companyHandlers.Get)
	e.GET("/services", catalogHandlers.List)
	e.GET("/services/:id", catalogHandlers.GetByID)
	e.GET("/reviews", reviewHandlers.List)
	e.POST("/reviews", reviewHandlers.Create)
	e.GET("/footer", footerHandlers.List)
	e.POST("/contacts", contactHandlers.Create)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Admin routes require a valid JWT.
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	protected.GET("/auth/me", authHandlers.Me)

	protected.PUT("/company-info", companyHandlers.Upsert)

	protected.POST("/services", catalogHandlers.Create)
	protected.PUT("/services/:id", catalogHandlers.Update)
	protected.DELETE("/services/:id", catalogHandlers.Delete)
	protected.POST("/services/:id/image", catalogHandlers.UploadImage)

	protected.GET("/contacts", contactHandlers.List)
	protected.GET("/contacts/:id", contactHandlers.GetByID)
	protected.DELETE("/contacts/:id", contactHandlers.Delete)

	protected.GET("/reviews/:id", reviewHandlers.GetByID)
	protected.PUT("/reviews/:id", reviewHandlers.Update)
	protected.DELETE("/reviews/:id", reviewHandlers.Delete)

	protected.POST("/footer/columns", footerHandlers.CreateColumn)
	protected.PUT("/footer/columns/:id", footerHandlers.UpdateColumn)
	protected.DELETE("/footer/columns/:id", footerHandlers.DeleteColumn)
	protected.POST("/footer/links", footerHandlers.CreateLink)
	protected.PUT("/footer/links/:id", footerHandlers.UpdateLink)
	protected.DELETE("/footer/links/:id", footerHandlers.DeleteLink)

	protected.POST("/service-registrations", registrationHandlers.Create)
	protected.GET("/service-registrations", registrationHandlers.List)
	protected.GET("/service-registrations/stats/overview", registrationHandlers.Stats)
	protected.GET("/service-registrations/expiring/soon", registrationHandlers.ExpiringSoon)
	protected.GET("/service-registrations/expired/list", registrationHandlers.ListExpired)
	protected.POST("/service-registrations/expired/update", registrationHandlers.SweepExpired)
	protected.GET("/service-registrations/:id", registrationHandlers.GetByID)
	protected.PUT("/service-registrations/:id", registrationHandlers.Update)
	protected.PATCH("/service-registrations/:id/extend", registrationHandlers.Extend)
	protected.DELETE("/service-registrations/:id", registrationHandlers.SoftDelete)
	protected.DELETE("/service-registrations/:id/permanent", registrationHandlers.PermanentDelete)

	protected.GET("/dashboard/stats", dashboardHandlers.GetStatistics)
	protected.POST("/dashboard/stats/refresh", dashboardHandlers.Refresh)
	protected.GET("/dashboard/detailed-stats", dashboardHandlers.Detailed)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	go func() {
		log.Printf("corpsite server v%s starting on port %d", version, port)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

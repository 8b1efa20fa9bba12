package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/handlers"
	"github.com/mmdatafocus/cashflow_guard/middlewares"
	"github.com/mmdatafocus/cashflow_guard/models"
	"github.com/mmdatafocus/cashflow_guard/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const defaultPort = "5001"

var tracer = otel.Tracer("cashflow-guard")

func corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	// In production only origins listed in CORS_ALLOWED_ORIGINS are allowed.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if config.IsProduction() {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = utils.SplitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length", "x-correlation-id")
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	return corsConfig
}

func newRouter(logger *logrus.Logger, reminders *models.ReminderService) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(cors.New(corsConfig()))

	if config.RateLimitEnabled() {
		if client := config.GetRedisDB(); client != nil {
			window := time.Duration(config.RateLimitWindowSeconds()) * time.Second
			r.Use(middlewares.NewRateLimiter(client, config.RateLimitMaxRequests(), window).RateLimitMiddleware)
		} else {
			logger.WithFields(logrus.Fields{"field": "rate limit"}).Warn("RATE_LIMIT_ENABLED=true but REDIS_ADDRESS is not set; rate limiting disabled")
		}
	}

	r.Use(middlewares.CustomErrorLogger(logger))
	r.Use(gin.Recovery())
	handlers.RegisterRoutes(r, reminders)
	return r
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Redis is optional and must be up before the limiter is installed.
	config.ConnectRedisWithRetry(5)

	reminders := models.NewReminderService(
		models.NewMockReminderStore(),
		models.NewCachedReminderStore(models.NewGormReminderStore(config.GetDB)),
		config.UseMockDB,
		logger,
		tracer,
	)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           newRouter(logger, reminders),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect the database after the port is open; until then database
	// routes answer 503. Mock mode at startup never connects.
	if config.UseMockDB() {
		logger.WithFields(logrus.Fields{"field": "database"}).Warn("USE_MOCK_DB=true; reminders are kept in memory and the database is not connected")
	} else {
		config.ConnectDatabaseWithRetry()
		defer config.CloseDatabase()

		// AutoMigrate can block tables; SKIP_MIGRATIONS lets a separate job run it.
		if !config.SkipMigrations() {
			models.MigrateTable()
		} else {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
		}
	}

	logger.WithFields(logrus.Fields{
		"info": "Server Started",
	}).Info("listening on http://localhost:", port, "/api")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	config.CloseRedis()
}

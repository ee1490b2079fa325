package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nexavault/storefront/internal/auth"
	"github.com/nexavault/storefront/internal/config"
	"github.com/nexavault/storefront/internal/events"
	httpAPI "github.com/nexavault/storefront/internal/http"
	"github.com/nexavault/storefront/internal/http/controller"
	"github.com/nexavault/storefront/internal/http/middleware"
	"github.com/nexavault/storefront/internal/logger"
	"github.com/nexavault/storefront/internal/metrics"
	"github.com/nexavault/storefront/internal/service"
	"github.com/nexavault/storefront/internal/store/postgres"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	if conf.Admin.PasswordHash == "" {
		slog.Warn("admin password configured in plain text, consider setting ADMIN_PASSWORD_HASH")
	} else if !auth.IsBcryptHash(conf.Admin.PasswordHash) {
		slog.Warn("ADMIN_PASSWORD_HASH does not look like a bcrypt hash, logins will fail")
	}

	ctx := context.Background()
	db, err := postgres.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	productStore := postgres.NewProductStore(db)

	// Catalogue events are optional; without a queue URL the storefront runs
	// standalone.
	var publisher service.Publisher
	if conf.EventsEnabled() {
		sqsClient, err := events.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
		handleErr("creating SQS client", err)
		publisher = events.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
		slog.Info("catalogue event publishing enabled")
	}

	productService := service.NewProductService(productStore, publisher)
	authService := auth.NewService(conf.Admin)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	mw := middleware.New(authService)
	ctr := controller.New(conf)
	productCtr := controller.NewProductController(productService)
	authCtr := controller.NewAuthController(authService)
	pageCtr := controller.NewPageController(productService, conf.SiteOrigin)

	httpServer := gin.Default()
	httpServer.LoadHTMLGlob("web/templates/*.html")
	httpServer = httpAPI.InitRouter(httpServer, mw, ctr, productCtr, authCtr, pageCtr)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}

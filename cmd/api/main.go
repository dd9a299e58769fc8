package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "product_estimator/docs"
	"product_estimator/internal/adapter/http/routes"
	"product_estimator/internal/infrastructure/config"
	"product_estimator/internal/infrastructure/telemetry"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Product Estimator API
// @version         1.0
// @description     Local estimator API: estimates, rooms and products kept in tiered storage, priced through the store's admin-ajax endpoint.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, shutdownMetrics, err := telemetry.InitMetrics(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("[main] metrics disabled err=%v", err)
	} else {
		defer func() {
			if err := shutdownMetrics(context.Background()); err != nil {
				log.Printf("[main] metrics shutdown err=%v", err)
			}
		}()
	}

	if err := routes.Run(ctx, cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

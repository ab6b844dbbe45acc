package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"paapi-lookup/internal/clients/catalog"
	"paapi-lookup/internal/config"
	"paapi-lookup/internal/logger"
	"paapi-lookup/internal/render"
	"paapi-lookup/internal/services/lookup"
	"paapi-lookup/internal/services/metrics"
	"paapi-lookup/internal/services/normalizer"
	"paapi-lookup/internal/services/signer"
	"paapi-lookup/internal/services/tracing"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	signerService, err := signer.NewService(cfg.Amazon, cfg.API, zapLogger)
	if err != nil {
		log.Fatalf("Failed to initialize signer: %v", err)
	}

	lookupService := lookup.NewService(
		signerService,
		normalizer.NewService(zapLogger),
		catalog.NewClient(cfg.API, zapLogger),
		metrics.NewService(),
		tracing.NewService("paapi-lookup"),
		zapLogger,
	)

	runPrompt(lookupService)
}

// runPrompt reads item IDs from stdin until an empty line or EOF. Empty
// records (the service got no usable response) print nothing, errors
// print their message, and the loop continues either way.
func runPrompt(lookupService *lookup.Service) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter item id to lookup: ")
	for scanner.Scan() {
		itemID := scanner.Text()
		if itemID == "" {
			return
		}

		item, err := lookupService.Lookup(context.Background(), itemID)
		switch {
		case err != nil:
			fmt.Printf("Lookup failed: %v\n", err)
		case !item.IsEmpty():
			fmt.Print(render.Item(item))
		}

		fmt.Print("Enter item id: ")
	}
}

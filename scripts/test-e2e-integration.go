package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"paapi-lookup/internal/clients/catalog"
	"paapi-lookup/internal/config"
	"paapi-lookup/internal/services/lookup"
	"paapi-lookup/internal/services/metrics"
	"paapi-lookup/internal/services/normalizer"
	"paapi-lookup/internal/services/signer"
	"paapi-lookup/internal/services/tracing"
	"paapi-lookup/pkg/errors"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// IntegrationTest drives the real lookup stack against a running
// catalog simulator. The simulator must be started with the same
// credentials this process sees (share a .env file or export the same
// variables for both).
type IntegrationTest struct {
	baseURL        string
	credentials    config.AmazonConfig
	endpoint       config.APIConfig
	signerService  *signer.Service
	lookupService  *lookup.Service
	metricsService *metrics.Service
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewIntegrationTest wires the client stack at the simulator's address.
func NewIntegrationTest(simulatorURL string, credentials config.AmazonConfig) (*IntegrationTest, error) {
	logger, _ := zap.NewDevelopment()

	parsed, err := url.Parse(simulatorURL)
	if err != nil {
		return nil, fmt.Errorf("invalid simulator URL %q: %w", simulatorURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("simulator URL %q must include scheme and host", simulatorURL)
	}

	endpoint := config.APIConfig{
		Scheme:         parsed.Scheme,
		Host:           parsed.Host,
		Path:           "/onca/xml",
		TimeoutSeconds: 30,
	}

	signerService, err := signer.NewService(credentials, endpoint, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build signer: %w", err)
	}

	metricsService := metrics.NewService()

	lookupService := lookup.NewService(
		signerService,
		normalizer.NewService(logger),
		catalog.NewClient(endpoint, logger),
		metricsService,
		tracing.NewService("paapi-lookup-e2e"),
		logger,
	)

	return &IntegrationTest{
		baseURL:        strings.TrimRight(simulatorURL, "/"),
		credentials:    credentials,
		endpoint:       endpoint,
		signerService:  signerService,
		lookupService:  lookupService,
		metricsService: metricsService,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         logger,
	}, nil
}

// TestHealth verifies the simulator is up before running lookups.
func (it *IntegrationTest) TestHealth(ctx context.Context) error {
	it.logger.Info("=== Testing simulator health ===")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, it.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := it.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("simulator not reachable at %s: %w", it.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}

	it.logger.Info("✓ simulator is healthy")
	return nil
}

// TestKnownItemLookup runs a full signed lookup for the sample
// catalog's fully populated item and checks the normalized record.
func (it *IntegrationTest) TestKnownItemLookup(ctx context.Context) error {
	it.logger.Info("=== Testing known item lookup (B00F0RRRCC) ===")

	item, err := it.lookupService.Lookup(ctx, "B00F0RRRCC")
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if item.ItemAttributes.Title == "" {
		return fmt.Errorf("expected a title for B00F0RRRCC, got an empty record (is the simulator running configs/catalog.yaml?)")
	}
	if item.Price != "$6.99" {
		return fmt.Errorf("expected price $6.99 from the sample catalog, got %q", item.Price)
	}
	if len(item.ItemAttributes.Features) == 0 {
		return fmt.Errorf("expected feature entries, got none")
	}
	if !strings.Contains(item.ItemAttributes.ItemDimensions.Height, "(") {
		return fmt.Errorf("expected a formatted height dimension, got %q", item.ItemAttributes.ItemDimensions.Height)
	}
	if item.Images.Large.URL == "" {
		return fmt.Errorf("expected a large image URL, got none")
	}

	it.logger.Info("✓ known item lookup returned the normalized record",
		zap.String("title", item.ItemAttributes.Title),
		zap.String("price", item.Price),
		zap.Int("features", len(item.ItemAttributes.Features)))
	return nil
}

// TestUnknownItemLookup checks that an absent ASIN surfaces as an
// upstream error carrying the endpoint's message.
func (it *IntegrationTest) TestUnknownItemLookup(ctx context.Context) error {
	it.logger.Info("=== Testing unknown item lookup ===")

	_, err := it.lookupService.Lookup(ctx, "B000000000")
	if err == nil {
		return fmt.Errorf("expected an error for an unknown item, got none")
	}
	if !errors.IsUpstream(err) {
		return fmt.Errorf("expected an upstream error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not a valid value for ItemId") {
		return fmt.Errorf("expected the endpoint's message, got: %v", err)
	}

	it.logger.Info("✓ unknown item reported as upstream error", zap.String("error", err.Error()))
	return nil
}

// TestUsedOnlyItem checks that used-offer pricing never reaches the
// record's price field.
func (it *IntegrationTest) TestUsedOnlyItem(ctx context.Context) error {
	it.logger.Info("=== Testing used-offers-only item (B07USEDONLY) ===")

	item, err := it.lookupService.Lookup(ctx, "B07USEDONLY")
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if item.ItemAttributes.Title == "" {
		return fmt.Errorf("expected a title for B07USEDONLY, got an empty record")
	}
	if item.Price != "" {
		return fmt.Errorf("expected no price for a used-only item, got %q", item.Price)
	}

	it.logger.Info("✓ used-only item has an empty price", zap.String("title", item.ItemAttributes.Title))
	return nil
}

// TestTamperedSignature alters a signed URL and expects the simulator
// to refuse it.
func (it *IntegrationTest) TestTamperedSignature(ctx context.Context) error {
	it.logger.Info("=== Testing tampered signature rejection ===")

	signed, err := it.signerService.SignLookup("B00F0RRRCC")
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	tampered := strings.Replace(signed.URL, "ItemId=B00F0RRRCC", "ItemId=B000000000", 1)
	if tampered == signed.URL {
		return fmt.Errorf("failed to tamper with the signed URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tampered, nil)
	if err != nil {
		return fmt.Errorf("failed to create tampered request: %w", err)
	}

	resp, err := it.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send tampered request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		return fmt.Errorf("expected 403 for a tampered request, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "SignatureDoesNotMatch") {
		return fmt.Errorf("expected a SignatureDoesNotMatch body, got: %s", string(body))
	}

	it.logger.Info("✓ tampered request rejected with 403 SignatureDoesNotMatch")
	return nil
}

// TestWrongSecretYieldsEmptyRecord runs the full lookup stack with a
// bad secret: the simulator answers 403, and the client reports that
// as an empty record rather than an error.
func (it *IntegrationTest) TestWrongSecretYieldsEmptyRecord(ctx context.Context) error {
	it.logger.Info("=== Testing wrong-secret lookup yields empty record ===")

	badCredentials := it.credentials
	badCredentials.SecretKey = it.credentials.SecretKey + "-wrong"

	badSigner, err := signer.NewService(badCredentials, it.endpoint, it.logger)
	if err != nil {
		return fmt.Errorf("failed to build wrong-secret signer: %w", err)
	}

	badStack := lookup.NewService(
		badSigner,
		normalizer.NewService(it.logger),
		catalog.NewClient(it.endpoint, it.logger),
		it.metricsService,
		tracing.NewService("paapi-lookup-e2e"),
		it.logger,
	)

	item, err := badStack.Lookup(ctx, "B00F0RRRCC")
	if err != nil {
		return fmt.Errorf("expected an empty record, got an error: %w", err)
	}
	if !item.IsEmpty() {
		return fmt.Errorf("expected an empty record from a rejected signature, got title %q", item.ItemAttributes.Title)
	}

	it.logger.Info("✓ rejected signature surfaced as an empty record")
	return nil
}

// RunAllTests runs the complete end-to-end scenario suite.
func (it *IntegrationTest) RunAllTests(ctx context.Context) error {
	it.logger.Info("========================================")
	it.logger.Info("Catalog lookup E2E integration tests")
	it.logger.Info("========================================")

	if err := it.TestHealth(ctx); err != nil {
		return fmt.Errorf("health test failed: %w", err)
	}
	if err := it.TestKnownItemLookup(ctx); err != nil {
		return fmt.Errorf("known item test failed: %w", err)
	}
	if err := it.TestUnknownItemLookup(ctx); err != nil {
		return fmt.Errorf("unknown item test failed: %w", err)
	}
	if err := it.TestUsedOnlyItem(ctx); err != nil {
		return fmt.Errorf("used-only item test failed: %w", err)
	}
	if err := it.TestTamperedSignature(ctx); err != nil {
		return fmt.Errorf("tampered signature test failed: %w", err)
	}
	if err := it.TestWrongSecretYieldsEmptyRecord(ctx); err != nil {
		return fmt.Errorf("wrong-secret test failed: %w", err)
	}

	it.logger.Info("========================================")
	it.logger.Info("✓ All integration tests passed!")
	it.logger.Info("========================================")
	return nil
}

func main() {
	_ = godotenv.Load()

	simulatorURL := getEnv("SIMULATOR_URL", "http://localhost:8080")
	credentials := config.AmazonConfig{
		AccessKey:    getEnv("AWS_ACCESS_KEY_ID", "test-access-key"),
		SecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", "test-secret-key"),
		AssociateTag: getEnv("AWS_ASSOCIATE_TAG", "mytag-20"),
	}

	it, err := NewIntegrationTest(simulatorURL, credentials)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize integration test: %v\n", err)
		os.Exit(1)
	}

	if err := it.RunAllTests(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Integration test failed: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Package lookup orchestrates one item lookup end to end: sign the
// request, fetch it over the transport, parse the body and normalize
// the result.
package lookup

import (
	"context"
	"net/http"
	"time"

	"paapi-lookup/internal/models"
	"paapi-lookup/internal/services/metrics"
	"paapi-lookup/internal/services/normalizer"
	"paapi-lookup/internal/services/signer"
	"paapi-lookup/internal/services/tracing"
	"paapi-lookup/internal/xmltree"
	"paapi-lookup/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transport fetches a fully formed signed URL and reports the status
// code with the raw response body. Implementations own timeouts and
// cancellation; the service owns response policy.
type Transport interface {
	Fetch(ctx context.Context, url string) (int, []byte, error)
}

type Service struct {
	signer     *signer.Service
	normalizer *normalizer.Service
	transport  Transport
	metrics    *metrics.Service
	tracing    *tracing.Service
	logger     *zap.Logger
}

func NewService(
	signerService *signer.Service,
	normalizerService *normalizer.Service,
	transport Transport,
	metricsService *metrics.Service,
	tracingService *tracing.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		signer:     signerService,
		normalizer: normalizerService,
		transport:  transport,
		metrics:    metricsService,
		tracing:    tracingService,
		logger:     logger,
	}
}

// Lookup performs one synchronous item lookup.
//
// A non-200 response yields the all-defaults record with no error; the
// caller cannot tell a missing item from a service outage this way,
// which matches the long-standing behavior callers depend on. Upstream
// invalid-request reports, transport failures and malformed bodies
// surface as typed errors.
func (s *Service) Lookup(ctx context.Context, itemID string) (*models.Item, error) {
	start := time.Now()
	lookupID := uuid.New().String()

	ctx, span := s.tracing.StartSpan(ctx, "lookup.item")
	defer span.End()
	tracing.AddSpanAttributes(span, map[string]string{
		"lookup_id": lookupID,
		"item_id":   itemID,
	})

	logger := s.logger.With(
		zap.String("lookup_id", lookupID),
		zap.String("item_id", itemID),
	)

	signed, err := s.signer.SignLookup(itemID)
	if err != nil {
		s.record("configuration_error", start)
		tracing.RecordError(span, err)
		logger.Error("failed to sign lookup request", zap.Error(err))
		return nil, err
	}
	s.metrics.RecordSignatureGenerated()

	status, body, err := s.transport.Fetch(ctx, signed.URL)
	if err != nil {
		s.record("transport_error", start)
		tracing.RecordError(span, err)
		logger.Error("lookup transport failed", zap.Error(err))
		return nil, err
	}

	if status != http.StatusOK {
		s.record("empty", start)
		logger.Warn("lookup returned non-200 status, yielding empty record",
			zap.Int("status", status))
		return models.NewItem(), nil
	}

	doc, err := xmltree.Parse(body)
	if err != nil {
		parseErr := errors.WrapParseError(err, "malformed lookup response", "response body is not well-formed XML")
		s.record("parse_error", start)
		tracing.RecordError(span, parseErr)
		logger.Error("failed to parse lookup response", zap.Error(err))
		return nil, parseErr
	}

	item, err := s.normalizer.Normalize(doc)
	if err != nil {
		s.record("upstream_invalid", start)
		tracing.RecordError(span, err)
		logger.Warn("lookup rejected by upstream", zap.Error(err))
		return nil, err
	}

	s.record("success", start)
	logger.Info("lookup completed",
		zap.String("title", item.ItemAttributes.Title),
		zap.Duration("elapsed", time.Since(start)))

	return item, nil
}

func (s *Service) record(outcome string, start time.Time) {
	s.metrics.RecordLookup(outcome)
	s.metrics.RecordLookupDuration(outcome, time.Since(start))
}

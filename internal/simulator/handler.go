package simulator

import (
	"crypto/hmac"
	"fmt"
	"net/http"
	"net/url"

	"paapi-lookup/internal/config"
	"paapi-lookup/internal/services/metrics"
	"paapi-lookup/internal/services/signer"
	"paapi-lookup/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the simulated catalog endpoint. Incoming requests are
// verified with the same canonical-query and signing code the client
// uses, so a signature accepted here is bit-for-bit the one the client
// produced.
type Handler struct {
	catalog     *Catalog
	credentials config.AmazonConfig
	metrics     *metrics.Service
	logger      *zap.Logger
}

// NewHandler creates a catalog endpoint handler.
func NewHandler(catalog *Catalog, credentials config.AmazonConfig, metricsService *metrics.Service, logger *zap.Logger) *Handler {
	return &Handler{
		catalog:     catalog,
		credentials: credentials,
		metrics:     metricsService,
		logger:      logger,
	}
}

// RegisterRoutes mounts the lookup and health endpoints.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/onca/xml", h.HandleItemLookup)
	router.GET("/healthz", h.HandleHealth)
}

// HandleItemLookup handles GET /onca/xml requests.
func (h *Handler) HandleItemLookup(c *gin.Context) {
	query := c.Request.URL.Query()
	logger := h.logger.With(zap.String("trace_id", utils.ExtractTraceID(c.GetHeader("traceparent"))))

	received := query.Get("Signature")
	if received == "" {
		logger.Warn("request without signature", zap.String("item_id", query.Get("ItemId")))
		h.metrics.RecordSignatureVerification("mismatch")
		h.respondForbidden(c, ErrorCodeSignatureMismatch, "Request is missing a Signature parameter.")
		return
	}

	if query.Get("AWSAccessKeyId") != h.credentials.AccessKey {
		logger.Warn("unknown access key", zap.String("access_key", query.Get("AWSAccessKeyId")))
		h.metrics.RecordSignatureVerification("mismatch")
		h.respondForbidden(c, ErrorCodeInvalidClientTokenID, "The AWSAccessKeyId in the request does not match a known key.")
		return
	}

	// Recompute the signature over everything except the signature
	// itself, against the host and path this request actually hit.
	query.Del("Signature")
	canonical := signer.CanonicalQuery(query)
	stringToSign := signer.StringToSign(http.MethodGet, c.Request.Host, c.Request.URL.Path, canonical)
	expected := signer.Sign(stringToSign, h.credentials.SecretKey)

	if !hmac.Equal([]byte(url.QueryEscape(received)), []byte(expected)) {
		logger.Warn("signature mismatch",
			zap.String("item_id", query.Get("ItemId")),
			zap.String("host", c.Request.Host))
		h.metrics.RecordSignatureVerification("mismatch")
		h.respondForbidden(c, ErrorCodeSignatureMismatch, "The request signature we calculated does not match the signature you provided.")
		return
	}
	h.metrics.RecordSignatureVerification("ok")

	itemID := query.Get("ItemId")
	if itemID == "" {
		c.XML(http.StatusOK, BuildInvalidResponse(ErrorCodeMissingParameters,
			"Your request is missing required parameters. Required parameters include ItemId."))
		return
	}

	item, found := h.catalog.Lookup(itemID)
	if !found {
		logger.Debug("item not in catalog", zap.String("item_id", itemID))
		c.XML(http.StatusOK, BuildInvalidResponse(ErrorCodeInvalidParameterValue,
			fmt.Sprintf("%s is not a valid value for ItemId. Please change this value and retry your request.", itemID)))
		return
	}

	logger.Debug("serving catalog item", zap.String("item_id", itemID), zap.String("title", item.Title))
	c.XML(http.StatusOK, BuildItemResponse(item))
}

// HandleHealth handles GET /healthz requests.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"catalog_items": h.catalog.Len(),
	})
}

func (h *Handler) respondForbidden(c *gin.Context, code, message string) {
	c.XML(http.StatusForbidden, SignatureErrorResponse{
		Error: ResponseError{
			Code:    code,
			Message: message,
		},
	})
}
